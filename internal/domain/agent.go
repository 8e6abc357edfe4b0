package domain

import "time"

// Agent is a desk employee who registers clients, opens credits and
// records settlements. Authentication lives outside this service; the
// acting agent is identified per request.
type Agent struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"created_on"`
}

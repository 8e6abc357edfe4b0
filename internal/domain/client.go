package domain

import (
	"strings"
	"time"
)

// Client is a person who owes one or more credits to the desk.
// NationalID and Phone are unique across all clients.
type Client struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	NationalID string    `json:"national_id"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks the required identity fields.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return NewValidationError("first_name", "is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return NewValidationError("last_name", "is required")
	}
	if strings.TrimSpace(c.NationalID) == "" {
		return NewValidationError("national_id", "is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return NewValidationError("phone", "is required")
	}
	return nil
}

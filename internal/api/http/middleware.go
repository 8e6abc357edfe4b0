package http

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"creditdesk-backend/internal/logger"
	"creditdesk-backend/internal/service"
)

const (
	headerRequestID = "X-Request-ID"
	headerAgentID   = "X-Agent-ID"
)

// RequestIDMiddleware tags every request with an id that flows onto
// audit entries as the session id.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(headerRequestID, id)
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs method, path, status and latency per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", r.Header.Get(headerRequestID))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// actorFrom identifies the acting agent. Authentication lives in front
// of this service; the gateway forwards the agent id as a header.
func actorFrom(r *http.Request) service.Actor {
	agentID, _ := strconv.ParseInt(r.Header.Get(headerAgentID), 10, 64)
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip, _, _ = net.SplitHostPort(r.RemoteAddr)
	}
	return service.Actor{
		AgentID:   agentID,
		IP:        ip,
		UserAgent: r.UserAgent(),
		SessionID: r.Header.Get(headerRequestID),
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(muxVar(r, name), 10, 64)
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

func queryInt64(r *http.Request, name string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return v
}

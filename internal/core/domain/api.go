package domain

import (
	"fmt"
	"net/http"
	"time"
)

// RouteLogin is where the session controller sends the user after a 401.
const RouteLogin = "/login"

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// Is makes a 401 APIError match ErrAuthExpired.
func (e *APIError) Is(target error) bool {
	return target == ErrAuthExpired && e.Status == http.StatusUnauthorized
}

// AuthExpired is emitted by the gateway when a request is rejected with 401.
type AuthExpired struct {
	Method string
	Path   string
	At     time.Time
}

// UploadProgress reports how much of an upload has been sent.
type UploadProgress struct {
	Sent     int64
	Total    int64
	Fraction float64
}

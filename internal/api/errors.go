package api

import "fmt"

// Error is the single failure shape every API call surfaces: a readable
// message, the raw or parsed response body, and the HTTP status. Transport
// failures carry status zero so callers never juggle a second error shape.
type Error struct {
	Message    string
	Body       any
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

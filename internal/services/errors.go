package services

import "fmt"

// QueryError represents a query-service specific error. Code is stable
// for clients, Message is safe to return verbatim, Err carries the
// underlying cause for the logs only.
type QueryError struct {
	Code    string
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

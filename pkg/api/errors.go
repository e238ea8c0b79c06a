package api

import (
	"errors"
	"fmt"
)

// ErrNoStreamData means the envelope did not carry a usable stream path:
// api_status was not "success", the data block was missing, or the path was
// empty. Callers treat it the same as any other "no stream" condition.
var ErrNoStreamData = errors.New("no stream data in response")

// NetworkError represents network-related errors
type NetworkError struct {
	URL     string
	Status  int
	Message string
}

func (e NetworkError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("network error: %s (HTTP %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

// APIError represents API-level errors reported inside a 200 envelope
type APIError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e APIError) Error() string {
	return fmt.Sprintf("API error at %s: %s (api_status: %s)", e.Endpoint, e.Message, e.Status)
}

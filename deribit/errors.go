// Copyright (c) 2025 cdrappi

package deribit

import (
	"errors"
	"fmt"
)

// ErrCredentials is reported when a private endpoint is invoked on a client
// that was created without both the access key and the access secret. The
// check happens before any network I/O.
var ErrCredentials = errors.New("access key or secret is not set")

// StatusError is reported when the server replies with a status code other
// than 200. The response body is not interpreted.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status code %d", e.StatusCode)
}

// APIError is reported when the server replies with HTTP 200 but the
// response envelope says success=false. Message holds the server-supplied
// text.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "request failed: " + e.Message
}

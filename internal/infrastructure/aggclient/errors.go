package aggclient

import (
	"errors"
	"fmt"
)

// Error codes the client gives special meaning to.
const (
	// CodeProductNotReady is returned while a report or feed is still
	// being generated upstream.
	CodeProductNotReady = "PRODUCT_NOT_READY"
)

// APIError is a structured error payload from the aggregation API. The
// upstream status code and body are preserved so callers can
// distinguish "their API said no" from a local failure.
type APIError struct {
	StatusCode   int    `json:"-"`
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	RequestID    string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("aggregation API error (status %d): %s - %s", e.StatusCode, e.ErrorCode, e.ErrorMessage)
}

// NotReady reports whether the error is the upstream not-ready signal
// for an asynchronously generated product.
func (e *APIError) NotReady() bool {
	return e.ErrorCode == CodeProductNotReady
}

// IsNotReady reports whether err is an upstream not-ready signal.
func IsNotReady(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotReady()
}

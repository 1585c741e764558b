// Package http exposes the REST surface. Handlers translate between
// the browser client and the domain services; upstream API errors pass
// through with their status and body so callers can tell "their API
// said no" apart from a local failure.
package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ledgerlink/internal/domain/reports"
	"ledgerlink/internal/domain/transactions"
	"ledgerlink/internal/infrastructure/aggclient"
)

// Fixed error codes for failures that originate locally.
const (
	codeInternal      = "INTERNAL_ERROR"
	codeReportTimeout = "REPORT_TIMED_OUT"
	codeSyncTimeout   = "SYNC_TIMED_OUT"
)

// errNotLinked is returned when an operation needs credentials the
// session does not have yet.
var errNotLinked = errors.New("no linked item for this session")

// errNoUserToken is returned when a report product is requested before
// a user token was created.
var errNoUserToken = errors.New("no user token for this session")

type errorResponse struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	RequestID    string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps a failure onto the response taxonomy: upstream API
// errors keep their status code and structured body; poll and sync
// timeouts get their own fixed codes; everything else is a generic
// internal error.
func writeError(w http.ResponseWriter, err error) {
	// Timeout checks come first: an exhausted polling session wraps the
	// last upstream error, and exhaustion must surface as a service
	// failure rather than as that final not-ready response.
	var apiErr *aggclient.APIError
	switch {
	case errors.Is(err, reports.ErrGenerationTimedOut):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			ErrorType:    "API_ERROR",
			ErrorCode:    codeReportTimeout,
			ErrorMessage: "report generation timed out",
		})
	case errors.Is(err, transactions.ErrSyncTimeout):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			ErrorType:    "API_ERROR",
			ErrorCode:    codeSyncTimeout,
			ErrorMessage: "transaction sync timed out",
		})
	case errors.As(err, &apiErr):
		writeJSON(w, apiErr.StatusCode, errorResponse{
			ErrorType:    apiErr.ErrorType,
			ErrorCode:    apiErr.ErrorCode,
			ErrorMessage: apiErr.ErrorMessage,
			RequestID:    apiErr.RequestID,
		})
	default:
		log.Printf("Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			ErrorType:    "API_ERROR",
			ErrorCode:    codeInternal,
			ErrorMessage: "internal server error",
		})
	}
}

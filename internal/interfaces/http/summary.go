package http

import (
	"context"
	"net/http"

	"ledgerlink/internal/domain/summary"
	"ledgerlink/internal/session"
)

// SummaryService assembles the best-effort multi-source snapshot.
type SummaryService interface {
	Snapshot(ctx context.Context, accessToken string) *summary.Snapshot
}

// SummaryHandler serves the aggregate snapshot endpoint.
type SummaryHandler struct {
	service SummaryService
	store   *session.Store
}

func NewSummaryHandler(service SummaryService, store *session.Store) *SummaryHandler {
	return &SummaryHandler{service: service, store: store}
}

// HandleSummary fans out to every data source; individual source
// failures degrade their field rather than failing the response.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	creds, err := linkedCredentials(r, h.store)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.service.Snapshot(r.Context(), creds.AccessToken))
}

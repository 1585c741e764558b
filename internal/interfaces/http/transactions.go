package http

import (
	"context"
	"net/http"

	"ledgerlink/internal/domain/transactions"
	"ledgerlink/internal/session"
)

// Syncer produces the full transaction delta set for an access token.
type Syncer interface {
	Sync(ctx context.Context, accessToken string) (*transactions.SyncResult, error)
}

// TransactionsHandler serves the recent-activity view derived from a
// full incremental sync.
type TransactionsHandler struct {
	syncer      Syncer
	store       *session.Store
	recentCount int
}

func NewTransactionsHandler(syncer Syncer, store *session.Store, recentCount int) *TransactionsHandler {
	if recentCount <= 0 {
		recentCount = transactions.DefaultRecentCount
	}
	return &TransactionsHandler{syncer: syncer, store: store, recentCount: recentCount}
}

// HandleTransactions drains the change feed from the beginning and
// returns the most recently dated transactions.
func (h *TransactionsHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	creds, err := linkedCredentials(r, h.store)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.syncer.Sync(r.Context(), creds.AccessToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"latest_transactions": transactions.Recent(result, h.recentCount),
	})
}

package http

import (
	"context"
	"net/http"

	"ledgerlink/internal/domain/reports"
	"ledgerlink/internal/session"
)

// ReportService runs the asynchronous report orchestrations.
type ReportService interface {
	AssetReport(ctx context.Context, accessToken string) (*reports.Report, error)
	BaseReport(ctx context.Context, userToken string) (*reports.Report, error)
	IncomeInsights(ctx context.Context, userToken string) (*reports.Report, error)
}

// ReportsHandler serves the report endpoints. Each response pairs the
// structured report with its PDF rendering, base64-encoded in JSON.
type ReportsHandler struct {
	service ReportService
	store   *session.Store
}

func NewReportsHandler(service ReportService, store *session.Store) *ReportsHandler {
	return &ReportsHandler{service: service, store: store}
}

// HandleAssetReport generates an asset report for the linked item.
func (h *ReportsHandler) HandleAssetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	creds, err := linkedCredentials(r, h.store)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.service.AssetReport(r.Context(), creds.AccessToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// userToken resolves the session's user token, which the credit report
// products are keyed by.
func (h *ReportsHandler) userToken(r *http.Request) (string, error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		return "", errNoUserToken
	}
	creds, ok := h.store.Get(id)
	if !ok || creds.UserToken == "" {
		return "", errNoUserToken
	}
	return creds.UserToken, nil
}

// HandleBaseReport returns the base credit report for the session's
// user token.
func (h *ReportsHandler) HandleBaseReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token, err := h.userToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.service.BaseReport(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleIncomeInsights returns the income-insights report for the
// session's user token.
func (h *ReportsHandler) HandleIncomeInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token, err := h.userToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.service.IncomeInsights(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

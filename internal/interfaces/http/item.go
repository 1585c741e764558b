package http

import (
	"context"
	"net/http"

	"ledgerlink/internal/infrastructure/aggclient"
	"ledgerlink/internal/session"
)

// ItemClient is the slice of the aggregation API the pass-through item
// endpoints need.
type ItemClient interface {
	GetAccounts(ctx context.Context, accessToken string) (*aggclient.AccountsResponse, error)
	GetBalances(ctx context.Context, accessToken string) (*aggclient.AccountsResponse, error)
	GetIdentity(ctx context.Context, accessToken string) (*aggclient.IdentityResponse, error)
	GetLiabilities(ctx context.Context, accessToken string) (*aggclient.LiabilitiesResponse, error)
	GetInvestmentHoldings(ctx context.Context, accessToken string) (*aggclient.HoldingsResponse, error)
}

// ItemHandler serves the direct pass-through endpoints for a linked
// item.
type ItemHandler struct {
	client ItemClient
	store  *session.Store
}

func NewItemHandler(client ItemClient, store *session.Store) *ItemHandler {
	return &ItemHandler{client: client, store: store}
}

// passThrough runs one item-scoped fetch and writes its result.
func (h *ItemHandler) passThrough(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, accessToken string) (any, error)) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	creds, err := linkedCredentials(r, h.store)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := fetch(r.Context(), creds.AccessToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ItemHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, func(ctx context.Context, accessToken string) (any, error) {
		return h.client.GetAccounts(ctx, accessToken)
	})
}

func (h *ItemHandler) HandleBalances(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, func(ctx context.Context, accessToken string) (any, error) {
		return h.client.GetBalances(ctx, accessToken)
	})
}

func (h *ItemHandler) HandleIdentity(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, func(ctx context.Context, accessToken string) (any, error) {
		return h.client.GetIdentity(ctx, accessToken)
	})
}

func (h *ItemHandler) HandleLiabilities(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, func(ctx context.Context, accessToken string) (any, error) {
		return h.client.GetLiabilities(ctx, accessToken)
	})
}

func (h *ItemHandler) HandleInvestmentHoldings(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, func(ctx context.Context, accessToken string) (any, error) {
		return h.client.GetInvestmentHoldings(ctx, accessToken)
	})
}

package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"ledgerlink/internal/infrastructure/aggclient"
	"ledgerlink/internal/session"
)

// LinkClient is the slice of the aggregation API the link flow needs.
type LinkClient interface {
	CreateLinkToken(ctx context.Context, clientUserID string) (*aggclient.LinkTokenResponse, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*aggclient.ExchangeResponse, error)
	CreateUser(ctx context.Context, clientUserID string) (*aggclient.UserResponse, error)
}

// LinkHandler serves the link flow: link-token creation, public-token
// exchange, and user-token creation for report products.
type LinkHandler struct {
	client LinkClient
	store  *session.Store
}

func NewLinkHandler(client LinkClient, store *session.Store) *LinkHandler {
	return &LinkHandler{client: client, store: store}
}

// HandleCreateLinkToken creates a short-lived link token keyed by the
// caller's session.
func (h *LinkHandler) HandleCreateLinkToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, _ := sessionID(r)
	resp, err := h.client.CreateLinkToken(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"link_token": resp.LinkToken,
		"expiration": resp.Expiration,
		"session_id": id,
	})
}

type exchangeRequest struct {
	PublicToken string `json:"public_token"`
}

// HandleExchangeToken trades the public token from the link flow for a
// long-lived access token and stores it under the caller's session.
// The access token itself never leaves the backend.
func (h *LinkHandler) HandleExchangeToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PublicToken == "" {
		http.Error(w, "public_token is required", http.StatusBadRequest)
		return
	}

	resp, err := h.client.ExchangePublicToken(r.Context(), req.PublicToken)
	if err != nil {
		writeError(w, err)
		return
	}

	id, created := sessionID(r)
	h.store.Update(id, func(c *session.Credentials) {
		c.AccessToken = resp.AccessToken
		c.ItemID = resp.ItemID
	})
	if created {
		log.Printf("Created session %s for item %s", id, resp.ItemID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"item_id":    resp.ItemID,
	})
}

// HandleCreateUser creates an aggregator-side user and stores the
// resulting user token, which keys the credit report products.
func (h *LinkHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, _ := sessionID(r)
	resp, err := h.client.CreateUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.store.Update(id, func(c *session.Credentials) {
		c.UserToken = resp.UserToken
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"user_id":    resp.UserID,
	})
}

package http

import (
	"net/http"

	"ledgerlink/internal/session"
)

// SessionHeader carries the session ID between the browser and the
// backend. The exchange handler mints one when the header is absent.
const SessionHeader = "X-Session-ID"

// sessionID extracts the caller's session ID, minting a new one when
// the header is missing.
func sessionID(r *http.Request) (id string, created bool) {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id, false
	}
	return session.NewID(), true
}

// linkedCredentials resolves the session's credentials and requires a
// completed token exchange.
func linkedCredentials(r *http.Request, store *session.Store) (session.Credentials, error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		return session.Credentials{}, errNotLinked
	}
	creds, ok := store.Get(id)
	if !ok || creds.AccessToken == "" {
		return session.Credentials{}, errNotLinked
	}
	return creds, nil
}

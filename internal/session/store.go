// Package session holds per-session aggregation credentials in process
// memory. Persistence is deliberately out of scope; an external store
// would replace this in a production deployment.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Credentials is the token set established for one linked session.
// AccessToken/ItemID come from the public-token exchange; UserToken
// keys the report products; the remaining IDs are populated by the
// operations that produce them.
type Credentials struct {
	AccessToken     string
	ItemID          string
	AccountID       string
	UserToken       string
	AuthorizationID string
	TransferID      string
	PaymentID       string
}

// Store is an in-memory credential store keyed by session ID. Writes
// within one key are last-write-wins under the lock; different
// sessions never interfere.
type Store struct {
	mu   sync.RWMutex
	byID map[string]Credentials
}

// NewStore creates an empty credential store.
func NewStore() *Store {
	return &Store{byID: make(map[string]Credentials)}
}

// NewID mints a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the credentials for a session.
func (s *Store) Get(id string) (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.byID[id]
	return creds, ok
}

// Set replaces the credentials for a session.
func (s *Store) Set(id string, creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = creds
}

// Update applies fn to the session's credentials under the write lock,
// creating the entry if absent.
func (s *Store) Update(id string, fn func(*Credentials)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds := s.byID[id]
	fn(&creds)
	s.byID[id] = creds
}

// Delete removes a session's credentials.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

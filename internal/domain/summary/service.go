// Package summary assembles a multi-source financial snapshot where
// each data source is best-effort: one failing source degrades its
// field instead of failing the whole response.
package summary

import (
	"context"
	"encoding/json"
	"log"

	"ledgerlink/internal/domain/transactions"
	"ledgerlink/internal/infrastructure/aggclient"
)

// Client is the slice of the aggregation API the aggregator fans out to.
type Client interface {
	GetAccounts(ctx context.Context, accessToken string) (*aggclient.AccountsResponse, error)
	GetBalances(ctx context.Context, accessToken string) (*aggclient.AccountsResponse, error)
	GetLiabilities(ctx context.Context, accessToken string) (*aggclient.LiabilitiesResponse, error)
}

// Syncer produces the transaction delta set backing the recent view.
type Syncer interface {
	Sync(ctx context.Context, accessToken string) (*transactions.SyncResult, error)
}

// Flags records which sources produced data.
type Flags struct {
	HasAccounts     bool `json:"has_accounts"`
	HasBalances     bool `json:"has_balances"`
	HasTransactions bool `json:"has_transactions"`
	HasLiabilities  bool `json:"has_liabilities"`
}

// Snapshot is the aggregate response. Failed sources are null with the
// corresponding flag false.
type Snapshot struct {
	Accounts           []aggclient.Account     `json:"accounts"`
	Balances           []aggclient.Account     `json:"balances"`
	LatestTransactions []aggclient.Transaction `json:"latest_transactions"`
	Liabilities        json.RawMessage         `json:"liabilities"`
	Summary            Flags                   `json:"summary"`
}

// Service fans out to the configured sources.
type Service struct {
	client      Client
	syncer      Syncer
	recentCount int
}

// NewService creates a summary aggregator. recentCount bounds the
// transactions view; zero takes the default.
func NewService(client Client, syncer Syncer, recentCount int) *Service {
	if recentCount <= 0 {
		recentCount = transactions.DefaultRecentCount
	}
	return &Service{client: client, syncer: syncer, recentCount: recentCount}
}

// Snapshot fetches every source, tolerating individual failures. Each
// failure is logged and degrades one field; the call itself never
// fails.
func (s *Service) Snapshot(ctx context.Context, accessToken string) *Snapshot {
	snap := &Snapshot{}

	if resp, err := s.client.GetAccounts(ctx, accessToken); err != nil {
		log.Printf("Summary: accounts fetch failed: %v", err)
	} else {
		snap.Accounts = resp.Accounts
		snap.Summary.HasAccounts = true
	}

	if resp, err := s.client.GetBalances(ctx, accessToken); err != nil {
		log.Printf("Summary: balances fetch failed: %v", err)
	} else {
		snap.Balances = resp.Accounts
		snap.Summary.HasBalances = true
	}

	if result, err := s.syncer.Sync(ctx, accessToken); err != nil {
		log.Printf("Summary: transaction sync failed: %v", err)
	} else {
		snap.LatestTransactions = transactions.Recent(result, s.recentCount)
		snap.Summary.HasTransactions = true
	}

	if resp, err := s.client.GetLiabilities(ctx, accessToken); err != nil {
		log.Printf("Summary: liabilities fetch failed: %v", err)
	} else {
		snap.Liabilities = resp.Liabilities
		snap.Summary.HasLiabilities = true
	}

	return snap
}

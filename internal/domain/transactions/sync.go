// Package transactions drives the incremental transaction change feed
// and derives bounded views over the synced delta set.
package transactions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ledgerlink/internal/infrastructure/aggclient"
)

const (
	// DefaultNotReadyDelay is the wait before refetching a page when
	// the feed signals it is still being prepared.
	DefaultNotReadyDelay = 2000 * time.Millisecond
	// DefaultCappedNotReadyDelay is the shorter wait used by the
	// capped variant backing the summary view.
	DefaultCappedNotReadyDelay = 1000 * time.Millisecond
	// DefaultMaxPages bounds one sync traversal, not-ready refetches
	// included. The upstream feed has no such bound; without one a
	// feed that never settles would loop forever.
	DefaultMaxPages = 250
	// DefaultRecordCap bounds the capped variant's accumulated added
	// records.
	DefaultRecordCap = 100
)

// ErrSyncTimeout is returned when the page budget is exhausted before
// the feed reports has_more=false.
var ErrSyncTimeout = errors.New("transaction sync timed out")

// SyncClient is the slice of the aggregation API the sync loop needs.
type SyncClient interface {
	SyncTransactions(ctx context.Context, accessToken, cursor string) (*aggclient.TransactionsSyncResponse, error)
}

// Config tunes one sync traversal. Zero values take the defaults.
type Config struct {
	NotReadyDelay time.Duration
	MaxPages      int
	// RecordCap stops the traversal once at least this many added
	// records have accumulated. Zero means no cap.
	RecordCap int
}

func (c Config) withDefaults() Config {
	if c.NotReadyDelay <= 0 {
		c.NotReadyDelay = DefaultNotReadyDelay
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	return c
}

// SyncResult is the accumulated delta set of one full traversal. The
// three sets are exposed unreconciled; Recent applies removed-ID
// reconciliation when deriving a view.
type SyncResult struct {
	Added    []aggclient.Transaction
	Modified []aggclient.Transaction
	Removed  []string
	Cursor   string
}

// Service drains the cursor-paginated change feed.
type Service struct {
	client SyncClient
	cfg    Config
}

// NewService creates a sync service with the given page source.
func NewService(client SyncClient, cfg Config) *Service {
	return &Service{client: client, cfg: cfg.withDefaults()}
}

// Sync drains the change feed from the beginning and returns the full
// accumulated delta set. An empty next_cursor on a successful page is
// the feed's not-ready signal: the same page is refetched after a
// fixed wait without advancing accumulation. Hard fetch failures abort
// the traversal; not-ready waits do not, but both consume the page
// budget so the loop is bounded either way.
func (s *Service) Sync(ctx context.Context, accessToken string) (*SyncResult, error) {
	result := &SyncResult{}
	cursor := ""

	for page := 1; page <= s.cfg.MaxPages; page++ {
		resp, err := s.client.SyncTransactions(ctx, accessToken, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sync page: %w", err)
		}

		if resp.NextCursor == "" {
			// Feed still being prepared upstream; retry the same page.
			log.Printf("Transaction feed not ready, waiting %v", s.cfg.NotReadyDelay)
			if err := wait(ctx, s.cfg.NotReadyDelay); err != nil {
				return nil, err
			}
			continue
		}

		result.Added = append(result.Added, resp.Added...)
		result.Modified = append(result.Modified, resp.Modified...)
		for _, removed := range resp.Removed {
			result.Removed = append(result.Removed, removed.TransactionID)
		}
		cursor = resp.NextCursor
		result.Cursor = cursor

		if !resp.HasMore {
			return result, nil
		}
		if s.cfg.RecordCap > 0 && len(result.Added) >= s.cfg.RecordCap {
			return result, nil
		}
	}

	return nil, fmt.Errorf("%w after %d pages", ErrSyncTimeout, s.cfg.MaxPages)
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

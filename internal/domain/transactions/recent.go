package transactions

import (
	"sort"

	"ledgerlink/internal/infrastructure/aggclient"
)

// DefaultRecentCount is the size of the "most recent transactions" view.
const DefaultRecentCount = 8

// Recent derives the n most recently dated transactions from a sync
// result: removed IDs are excluded, the remainder is sorted ascending
// by date (ISO date strings order lexicographically), and the last n
// entries are returned in ascending date order. The sort is stable, so
// equal dates keep their feed order.
func Recent(result *SyncResult, n int) []aggclient.Transaction {
	if n <= 0 {
		n = DefaultRecentCount
	}

	removed := make(map[string]struct{}, len(result.Removed))
	for _, id := range result.Removed {
		removed[id] = struct{}{}
	}

	kept := make([]aggclient.Transaction, 0, len(result.Added))
	for _, tx := range result.Added {
		if _, gone := removed[tx.TransactionID]; gone {
			continue
		}
		kept = append(kept, tx)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date < kept[j].Date
	})

	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return kept
}

package giftcard

import (
	"github.com/shopspring/decimal"
)

// ===========================
// LedgerReplayService
// ===========================

// Mismatch describes a ledger entry whose balanceAfter does not equal the
// running sum of deltas up to and including it.
type Mismatch struct {
	TransactionID TransactionID
	Sequence      int
	Recorded      decimal.Decimal
	Expected      decimal.Decimal
}

// ReplayResult is the outcome of replaying a card's ledger from zero.
type ReplayResult struct {
	Entries      int
	Replayed     decimal.Decimal
	Cached       decimal.Decimal
	Mismatches   []Mismatch
	WentNegative bool
}

// Consistent reports whether every balanceAfter matched and the cached
// balance equals the replayed total.
func (r ReplayResult) Consistent() bool {
	return len(r.Mismatches) == 0 && !r.WentNegative && r.Replayed.Equal(r.Cached)
}

// LedgerReplayService recomputes a balance from ledger entries. It is
// stateless and safe for concurrent use.
type LedgerReplayService struct{}

func NewLedgerReplayService() *LedgerReplayService {
	return &LedgerReplayService{}
}

// Replay walks entries oldest first, starting at 0. It uses raw decimals
// so corrupted histories (including ones that dip below zero) can still
// be reported.
func (s *LedgerReplayService) Replay(entries []*Transaction, cached Money) ReplayResult {
	running := decimal.Zero
	result := ReplayResult{Cached: cached.Decimal()}

	for _, entry := range entries {
		running = running.Add(entry.Delta())
		if running.IsNegative() {
			result.WentNegative = true
		}
		if !running.Equal(entry.BalanceAfter().Decimal()) {
			result.Mismatches = append(result.Mismatches, Mismatch{
				TransactionID: entry.ID(),
				Sequence:      entry.Sequence(),
				Recorded:      entry.BalanceAfter().Decimal(),
				Expected:      running,
			})
		}
		result.Entries++
	}

	result.Replayed = running
	return result
}

package giftcard

import "iter"

// TransactionSeq is a lazy sequence of ledger entries. Iteration stops at
// the first error, which is yielded with a nil entry.
type TransactionSeq = iter.Seq2[*Transaction, error]

// History is a finite, restartable view over a card's recent ledger
// entries. Every call to All starts a fresh read from the store.
type History struct {
	cardCode CardCode
	limit    int
	source   func() TransactionSeq
}

// NewHistory wraps a sequence factory.
func NewHistory(cardCode CardCode, limit int, source func() TransactionSeq) *History {
	return &History{cardCode: cardCode, limit: limit, source: source}
}

func (h *History) CardCode() CardCode { return h.cardCode }

func (h *History) Limit() int { return h.limit }

// All returns a new iteration over the entries, newest first.
func (h *History) All() TransactionSeq {
	return h.source()
}

// Collect drains one iteration into a slice.
func (h *History) Collect() ([]*Transaction, error) {
	entries := make([]*Transaction, 0, h.limit)
	for entry, err := range h.All() {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/centavo/installments/internal/domain/port"
)

// StubLedgerPoster is a development/test adapter that assigns deterministic
// posting ids derived from the posting reference, so a re-sent posting maps
// to the same id instead of a duplicate. It implements port.LedgerPoster.
type StubLedgerPoster struct {
	mu        sync.Mutex
	Transfers map[string]port.Transfer
	Expenses  map[string]port.Expense
}

// NewStubLedgerPoster creates a new stub ledger.
func NewStubLedgerPoster() *StubLedgerPoster {
	return &StubLedgerPoster{
		Transfers: make(map[string]port.Transfer),
		Expenses:  make(map[string]port.Expense),
	}
}

// PostTransfer records the transfer once per reference and returns its id.
func (l *StubLedgerPoster) PostTransfer(_ context.Context, t port.Transfer) (string, error) {
	id := postingID(t.Reference)
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, seen := l.Transfers[id]; !seen {
		l.Transfers[id] = t
	}
	return id, nil
}

// PostExpense records the expense once per reference and returns its id.
func (l *StubLedgerPoster) PostExpense(_ context.Context, e port.Expense) (string, error) {
	id := postingID(e.Reference)
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, seen := l.Expenses[id]; !seen {
		l.Expenses[id] = e
	}
	return id, nil
}

func postingID(reference string) string {
	h := sha256.Sum256([]byte(reference))
	return hex.EncodeToString(h[:8])
}

package adapter

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/port"
)

// StubAccountDirectory is a development/test adapter holding accounts in
// memory. It implements port.AccountDirectory.
type StubAccountDirectory struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]port.Account
}

// NewStubAccountDirectory creates an empty stub directory.
func NewStubAccountDirectory(accounts ...port.Account) *StubAccountDirectory {
	d := &StubAccountDirectory{accounts: make(map[uuid.UUID]port.Account)}
	for _, a := range accounts {
		d.accounts[a.ID] = a
	}
	return d
}

// Register adds or replaces an account.
func (d *StubAccountDirectory) Register(a port.Account) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accounts[a.ID] = a
}

// FindByID resolves a registered account.
func (d *StubAccountDirectory) FindByID(_ context.Context, id uuid.UUID) (port.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.accounts[id]
	if !ok {
		return port.Account{}, fault.NewNotFound("account", id.String())
	}
	return a, nil
}

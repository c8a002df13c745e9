package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// PlanLocks serializes mutations per plan id. Edit, Cancel and RecordPayment
// on the same plan must not interleave, because the edit partition is read
// from the count of completed rows. Different plans proceed in parallel.
type PlanLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*planLock
}

type planLock struct {
	mu   sync.Mutex
	refs int
}

// NewPlanLocks builds the shared lock table handed to the mutating usecases.
func NewPlanLocks() *PlanLocks {
	return &PlanLocks{locks: make(map[uuid.UUID]*planLock)}
}

// Lock acquires the mutation lock for the given plan and returns the release
// function.
func (pl *PlanLocks) Lock(planID uuid.UUID) func() {
	pl.mu.Lock()
	entry, ok := pl.locks[planID]
	if !ok {
		entry = &planLock{}
		pl.locks[planID] = entry
	}
	entry.refs++
	pl.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		pl.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(pl.locks, planID)
		}
		pl.mu.Unlock()
	}
}

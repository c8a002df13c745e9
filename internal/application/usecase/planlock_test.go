package usecase

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlanLocksSerializeSamePlan(t *testing.T) {
	locks := NewPlanLocks()
	planID := uuid.New()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := locks.Lock(planID)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
	assert.Empty(t, locks.locks, "lock table is cleaned up after release")
}

func TestPlanLocksIndependentPlans(t *testing.T) {
	locks := NewPlanLocks()

	unlockA := locks.Lock(uuid.New())
	unlockB := locks.Lock(uuid.New())

	// Holding one plan's lock must not block another plan's.
	unlockB()
	unlockA()

	assert.Empty(t, locks.locks)
}

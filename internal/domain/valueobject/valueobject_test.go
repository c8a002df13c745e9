package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanStatus(t *testing.T) {
	for _, raw := range []string{"ACTIVE", "COMPLETED", "CANCELLED"} {
		s, err := NewPlanStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}

	_, err := NewPlanStatus("PAUSED")
	assert.Error(t, err)

	_, err = NewPlanStatus("active")
	assert.Error(t, err, "statuses are case sensitive")
}

func TestPlanStatusIsTerminal(t *testing.T) {
	assert.False(t, PlanStatusActive.IsTerminal())
	assert.True(t, PlanStatusCompleted.IsTerminal())
	assert.True(t, PlanStatusCancelled.IsTerminal())
}

func TestNewRowStatusRejectsOverdue(t *testing.T) {
	// OVERDUE is derived, never stored.
	_, err := NewRowStatus("OVERDUE")
	assert.Error(t, err)

	s, err := NewRowStatus("PENDING")
	require.NoError(t, err)
	assert.True(t, s.Equal(RowStatusPending))

	s, err = NewRowStatus("COMPLETED")
	require.NoError(t, err)
	assert.True(t, s.Equal(RowStatusCompleted))
}

func TestNewRateBps(t *testing.T) {
	r, err := NewRateBps(200)
	require.NoError(t, err)
	assert.Equal(t, int64(200), r.Bps())
	assert.Equal(t, "2.00", r.Percent())
	assert.Equal(t, "0.02", r.Fraction().String())

	zero, err := NewRateBps(0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0.00", zero.Percent())

	max, err := NewRateBps(10000)
	require.NoError(t, err)
	assert.Equal(t, "100.00", max.Percent())

	_, err = NewRateBps(-1)
	assert.Error(t, err)
	_, err = NewRateBps(10001)
	assert.Error(t, err)
}

func TestParseRatePercent(t *testing.T) {
	tests := []struct {
		input   string
		wantBps int64
		wantErr bool
	}{
		{input: "2.00", wantBps: 200},
		{input: "2", wantBps: 200},
		{input: "12.5", wantBps: 1250},
		{input: "0", wantBps: 0},
		{input: "100.00", wantBps: 10000},
		{input: "0.01", wantBps: 1},
		{input: "2.005", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "100.01", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := ParseRatePercent(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBps, r.Bps())
		})
	}
}

func TestRateEqual(t *testing.T) {
	a, _ := NewRateBps(150)
	b, _ := ParseRatePercent("1.50")
	c, _ := NewRateBps(151)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RowStatus – immutable value object
// ---------------------------------------------------------------------------

// RowStatus represents the settlement state of one installment row.
// OVERDUE is derived at read time from PENDING plus a past due date and is
// never stored.
type RowStatus struct {
	value string
}

const (
	rowStatusPending   = "PENDING"
	rowStatusCompleted = "COMPLETED"
	rowStatusOverdue   = "OVERDUE"
)

var (
	RowStatusPending   = RowStatus{value: rowStatusPending}
	RowStatusCompleted = RowStatus{value: rowStatusCompleted}
	RowStatusOverdue   = RowStatus{value: rowStatusOverdue}
)

// validStoredRowStatuses deliberately excludes OVERDUE.
var validStoredRowStatuses = map[string]RowStatus{
	rowStatusPending:   RowStatusPending,
	rowStatusCompleted: RowStatusCompleted,
}

// NewRowStatus creates a storable RowStatus from a raw string.
func NewRowStatus(s string) (RowStatus, error) {
	v, ok := validStoredRowStatuses[s]
	if !ok {
		return RowStatus{}, fmt.Errorf("invalid row status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s RowStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s RowStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s RowStatus) Equal(other RowStatus) bool { return s.value == other.value }

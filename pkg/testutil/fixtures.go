package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestPlanID          = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestCardAccountID   = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestLoanAccountID   = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	TestSourceAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000012")
)

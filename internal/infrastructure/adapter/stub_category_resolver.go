package adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StubCategoryResolver is a development/test adapter that derives a stable
// category id from the category name, so repeated calls are idempotent.
// It implements port.CategoryResolver.
type StubCategoryResolver struct{}

// NewStubCategoryResolver creates a new stub resolver.
func NewStubCategoryResolver() *StubCategoryResolver {
	return &StubCategoryResolver{}
}

// EnsureFinancingCategory returns the name's deterministic UUID.
func (r *StubCategoryResolver) EnsureFinancingCategory(_ context.Context, name string) (uuid.UUID, error) {
	if name == "" {
		return uuid.Nil, fmt.Errorf("category name is required")
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("category/"+name)), nil
}

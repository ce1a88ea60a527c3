package ports

import (
	"context"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// StateRepository persists the single system-wide mental state record.
type StateRepository interface {
	// Get returns nil when no state has been recorded yet.
	Get(ctx context.Context) (*domain.MentalState, error)
	Set(ctx context.Context, state domain.MentalState) error
}

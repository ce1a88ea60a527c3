package ports

import (
	"context"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// MemberCache caches the upstream member listing. Misses and cache errors
// degrade to a fresh upstream fetch; Invalidate is called after any tag
// mutation so enrichment changes become visible immediately.
type MemberCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context) ([]domain.Member, error)
	Set(ctx context.Context, members []domain.Member) error
	Invalidate(ctx context.Context) error
}

package ports

import (
	"context"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// StatusRepository persists per-member statuses keyed by member identifier.
type StatusRepository interface {
	All(ctx context.Context) (map[string]domain.MemberStatus, error)
	// Get returns nil when the member has no status set.
	Get(ctx context.Context, memberRef string) (*domain.MemberStatus, error)
	Set(ctx context.Context, memberRef string, status domain.MemberStatus) error
	// Clear reports whether a status existed.
	Clear(ctx context.Context, memberRef string) (bool, error)
}

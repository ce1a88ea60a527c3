package ports

import (
	"context"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// MemberDirectory serves member data from the upstream API enriched with the
// locally stored tags and statuses. Fronters is the authoritative source
// broadcast after every front change.
type MemberDirectory interface {
	Members(ctx context.Context) ([]domain.Member, error)
	// Member resolves by upstream ID or case-insensitive name.
	Member(ctx context.Context, ref string) (*domain.Member, error)
	Fronters(ctx context.Context) (*domain.Fronters, error)
}

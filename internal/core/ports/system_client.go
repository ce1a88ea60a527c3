package ports

import (
	"context"
	"time"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

// SystemInfo is the public profile of the tracked system.
type SystemInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	MemberCount int    `json:"member_count"`
}

// SystemClient is the facade over the third-party system-tracking API.
type SystemClient interface {
	GetSystem(ctx context.Context) (*SystemInfo, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
	GetFronters(ctx context.Context) (*domain.Fronters, error)
	SetFront(ctx context.Context, memberIDs []string) error
	// ListSwitches returns front changes since the given time, newest first.
	ListSwitches(ctx context.Context, since time.Time) ([]domain.Switch, error)
}

package service

import (
	"context"
	"time"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// stubSystemClient returns canned upstream data and records SetFront calls.
type stubSystemClient struct {
	members  []domain.Member
	fronters *domain.Fronters
	switches []domain.Switch

	listErr     error
	frontersErr error
	setFrontErr error

	listCalls     int
	setFrontCalls [][]string
}

func (c *stubSystemClient) GetSystem(ctx context.Context) (*ports.SystemInfo, error) {
	return &ports.SystemInfo{ID: "sys", Name: "Test System", MemberCount: len(c.members)}, nil
}

func (c *stubSystemClient) ListMembers(ctx context.Context) ([]domain.Member, error) {
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]domain.Member, len(c.members))
	copy(out, c.members)
	return out, nil
}

func (c *stubSystemClient) GetFronters(ctx context.Context) (*domain.Fronters, error) {
	if c.frontersErr != nil {
		return nil, c.frontersErr
	}
	cp := *c.fronters
	cp.Members = make([]domain.Member, len(c.fronters.Members))
	copy(cp.Members, c.fronters.Members)
	return &cp, nil
}

func (c *stubSystemClient) SetFront(ctx context.Context, memberIDs []string) error {
	if c.setFrontErr != nil {
		return c.setFrontErr
	}
	c.setFrontCalls = append(c.setFrontCalls, memberIDs)
	return nil
}

func (c *stubSystemClient) ListSwitches(ctx context.Context, since time.Time) ([]domain.Switch, error) {
	return c.switches, nil
}

// stubTagRepo is a map-backed TagRepository.
type stubTagRepo struct {
	tags   map[string][]string
	allErr error
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{tags: make(map[string][]string)}
}

func (r *stubTagRepo) All(ctx context.Context) (map[string][]string, error) {
	if r.allErr != nil {
		return nil, r.allErr
	}
	out := make(map[string][]string, len(r.tags))
	for k, v := range r.tags {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

func (r *stubTagRepo) Get(ctx context.Context, memberRef string) ([]string, error) {
	return append([]string(nil), r.tags[memberRef]...), nil
}

func (r *stubTagRepo) Replace(ctx context.Context, memberRef string, tags []string) error {
	if len(tags) == 0 {
		delete(r.tags, memberRef)
		return nil
	}
	r.tags[memberRef] = append([]string(nil), tags...)
	return nil
}

// stubStatusRepo is a map-backed StatusRepository.
type stubStatusRepo struct {
	statuses map[string]domain.MemberStatus
	setErr   error
}

func newStubStatusRepo() *stubStatusRepo {
	return &stubStatusRepo{statuses: make(map[string]domain.MemberStatus)}
}

func (r *stubStatusRepo) All(ctx context.Context) (map[string]domain.MemberStatus, error) {
	out := make(map[string]domain.MemberStatus, len(r.statuses))
	for k, v := range r.statuses {
		out[k] = v
	}
	return out, nil
}

func (r *stubStatusRepo) Get(ctx context.Context, memberRef string) (*domain.MemberStatus, error) {
	if s, ok := r.statuses[memberRef]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *stubStatusRepo) Set(ctx context.Context, memberRef string, status domain.MemberStatus) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.statuses[memberRef] = status
	return nil
}

func (r *stubStatusRepo) Clear(ctx context.Context, memberRef string) (bool, error) {
	_, ok := r.statuses[memberRef]
	delete(r.statuses, memberRef)
	return ok, nil
}

// stubStateRepo holds the single mental state record.
type stubStateRepo struct {
	state *domain.MentalState
}

func (r *stubStateRepo) Get(ctx context.Context) (*domain.MentalState, error) {
	if r.state == nil {
		return nil, nil
	}
	s := *r.state
	return &s, nil
}

func (r *stubStateRepo) Set(ctx context.Context, state domain.MentalState) error {
	r.state = &state
	return nil
}

// stubMemberCache is an in-memory MemberCache with error injection.
type stubMemberCache struct {
	members []domain.Member

	getErr error
	setErr error

	invalidations int
}

func (c *stubMemberCache) Get(ctx context.Context) ([]domain.Member, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.members == nil {
		return nil, nil
	}
	out := make([]domain.Member, len(c.members))
	copy(out, c.members)
	return out, nil
}

func (c *stubMemberCache) Set(ctx context.Context, members []domain.Member) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.members = append([]domain.Member(nil), members...)
	return nil
}

func (c *stubMemberCache) Invalidate(ctx context.Context) error {
	c.invalidations++
	c.members = nil
	return nil
}

// recordedEvent is one BroadcastEvent call captured by stubBroadcaster.
type recordedEvent struct {
	eventType string
	data      any
	group     string
}

type stubBroadcaster struct {
	events []recordedEvent
}

func (b *stubBroadcaster) BroadcastEvent(eventType string, data any, group string) {
	b.events = append(b.events, recordedEvent{eventType: eventType, data: data, group: group})
}

func (b *stubBroadcaster) ofType(eventType string) []recordedEvent {
	var out []recordedEvent
	for _, e := range b.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

func memberNamed(id, name string) domain.Member {
	return domain.Member{ID: id, Name: name}
}

package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// memberService serves member data from the upstream API, enriched with the
// locally stored tags and statuses. The raw upstream listing is cached; the
// enrichment is applied per request so status and tag edits show up without
// waiting out the cache TTL (only tag keys change identity-to-tag mapping,
// and those invalidate the cache anyway).
type memberService struct {
	system   ports.SystemClient
	tags     ports.TagRepository
	statuses ports.StatusRepository
	cache    ports.MemberCache
	log      zerolog.Logger
}

// NewMemberDirectory wires a MemberDirectory over the upstream client and
// the local enrichment stores.
func NewMemberDirectory(
	system ports.SystemClient,
	tags ports.TagRepository,
	statuses ports.StatusRepository,
	cache ports.MemberCache,
	log zerolog.Logger,
) ports.MemberDirectory {
	return &memberService{system: system, tags: tags, statuses: statuses, cache: cache, log: log}
}

func (s *memberService) Members(ctx context.Context) ([]domain.Member, error) {
	members, err := s.rawMembers(ctx)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, members)
	return members, nil
}

func (s *memberService) Member(ctx context.Context, ref string) (*domain.Member, error) {
	members, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == ref || strings.EqualFold(members[i].Name, ref) {
			return &members[i], nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (s *memberService) Fronters(ctx context.Context) (*domain.Fronters, error) {
	fronters, err := s.system.GetFronters(ctx)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, fronters.Members)
	return fronters, nil
}

// rawMembers serves the upstream listing through the cache. Cache failures
// degrade to a fresh fetch, never to an error.
func (s *memberService) rawMembers(ctx context.Context) ([]domain.Member, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("member cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	members, err := s.system.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, members); err != nil {
		s.log.Warn().Err(err).Msg("member cache write failed")
	}
	return members, nil
}

// enrich annotates members in place with tags and statuses. Enrichment
// failures are logged and the unenriched data served; a store hiccup must
// not take the public member pages down with it.
func (s *memberService) enrich(ctx context.Context, members []domain.Member) {
	tags, err := s.tags.All(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("tag enrichment failed")
		tags = nil
	}
	statuses, err := s.statuses.All(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("status enrichment failed")
		statuses = nil
	}

	for i := range members {
		m := &members[i]
		if t, ok := lookupByRef(tags, m); ok {
			m.Tags = t
		}
		if st, ok := lookupByRef(statuses, m); ok {
			status := st
			m.Status = &status
		}
	}
}

// lookupByRef resolves a member in an identifier-keyed map by upstream ID
// first, then case-insensitive name. Admins address members either way.
func lookupByRef[V any](byRef map[string]V, m *domain.Member) (V, bool) {
	var zero V
	if byRef == nil {
		return zero, false
	}
	if v, ok := byRef[m.ID]; ok {
		return v, true
	}
	for ref, v := range byRef {
		if strings.EqualFold(ref, m.Name) {
			return v, true
		}
	}
	return zero, false
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

// TagService manages member tag assignments. Every mutation invalidates the
// cached member listing so enrichment changes become visible immediately.
type TagService struct {
	tags  ports.TagRepository
	cache ports.MemberCache
	log   zerolog.Logger
}

func NewTagService(tags ports.TagRepository, cache ports.MemberCache, log zerolog.Logger) *TagService {
	return &TagService{tags: tags, cache: cache, log: log}
}

func (s *TagService) All(ctx context.Context) (map[string][]string, error) {
	return s.tags.All(ctx)
}

// Replace overwrites the member's complete tag list. Blank entries are
// dropped, the rest trimmed.
func (s *TagService) Replace(ctx context.Context, memberRef string, tags []string) error {
	if memberRef == "" {
		return fmt.Errorf("%w: member identifier is required", domain.ErrValidation)
	}

	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	if err := s.tags.Replace(ctx, memberRef, cleaned); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Add appends one tag, reporting false when the member already has it.
func (s *TagService) Add(ctx context.Context, memberRef, tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, fmt.Errorf("%w: tag is required", domain.ErrValidation)
	}

	existing, err := s.tags.Get(ctx, memberRef)
	if err != nil {
		return false, err
	}
	for _, t := range existing {
		if strings.EqualFold(t, tag) {
			return false, nil
		}
	}

	if err := s.tags.Replace(ctx, memberRef, append(existing, tag)); err != nil {
		return false, err
	}
	s.invalidate(ctx)
	return true, nil
}

// Remove deletes one tag, failing with domain.ErrTagNotFound when absent.
func (s *TagService) Remove(ctx context.Context, memberRef, tag string) error {
	existing, err := s.tags.Get(ctx, memberRef)
	if err != nil {
		return err
	}

	kept := existing[:0]
	found := false
	for _, t := range existing {
		if strings.EqualFold(t, tag) {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("%w: %q on %q", domain.ErrTagNotFound, tag, memberRef)
	}

	if err := s.tags.Replace(ctx, memberRef, kept); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TagService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("member cache invalidation failed")
	}
}

package ports

import "context"

// TagRepository persists member tag assignments keyed by member identifier
// (upstream ID or name, as supplied by the admin).
type TagRepository interface {
	// All returns every assignment as identifier → tags.
	All(ctx context.Context) (map[string][]string, error)
	Get(ctx context.Context, memberRef string) ([]string, error)
	// Replace overwrites the member's complete tag list.
	Replace(ctx context.Context, memberRef string, tags []string) error
}

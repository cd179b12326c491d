package registry

import (
	"context"
	"maps"
	"strings"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

// Search runs full-text queries over clips and courses.
type Search struct{ r *Registry }

// Query returns the results for q narrowed by f. A blank query is disabled.
func (s Search) Query(
	ctx context.Context, q string, f domain.Filters, opts ...querycache.QueryOption,
) (domain.SearchResults, error) {
	q = strings.TrimSpace(q)
	params := make(domain.Filters, len(f)+1)
	maps.Copy(params, f)
	params["q"] = q
	return query[domain.SearchResults](ctx, s.r, domain.Search.Results(q, f), "/search"+params.Query(),
		requireID(opts, q))
}

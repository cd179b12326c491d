package registry

import (
	"context"
	"time"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

// OverviewInterval is how often the analytics overview is polled while watched.
const OverviewInterval = time.Minute

// Analytics reads engagement reports. Reports are read-only.
type Analytics struct{ r *Registry }

// Overview returns the overview report for f.
func (a Analytics) Overview(
	ctx context.Context, f domain.Filters, opts ...querycache.QueryOption,
) (domain.AnalyticsOverview, error) {
	return query[domain.AnalyticsOverview](ctx, a.r, domain.Analytics.Overview(f),
		"/analytics/overview"+f.Query(), opts)
}

// WatchOverview observes the overview report, polling every OverviewInterval
// unless opts say otherwise.
func (a Analytics) WatchOverview(
	ctx context.Context, f domain.Filters, opts ...querycache.QueryOption,
) *querycache.Observer[domain.AnalyticsOverview] {
	opts = append([]querycache.QueryOption{querycache.RefetchInterval(OverviewInterval)}, opts...)
	return watch[domain.AnalyticsOverview](ctx, a.r, domain.Analytics.Overview(f),
		"/analytics/overview"+f.Query(), opts)
}

// Clip returns the statistics of one clip.
func (a Analytics) Clip(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) (domain.EngagementStats, error) {
	return query[domain.EngagementStats](ctx, a.r, domain.Analytics.Clip(id),
		pathf("/analytics/clips/%s", id), requireID(opts, id))
}

// Course returns the statistics of one course.
func (a Analytics) Course(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) (domain.EngagementStats, error) {
	return query[domain.EngagementStats](ctx, a.r, domain.Analytics.Course(id),
		pathf("/analytics/courses/%s", id), requireID(opts, id))
}

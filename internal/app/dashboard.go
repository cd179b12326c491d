package app

import (
	"context"

	"go.trai.ch/reel/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the landing view of a signed-in learner.
type Dashboard struct {
	User         domain.User
	Enrolled     []domain.Course
	Bookmarks    []domain.Clip
	Subscription domain.Subscription
}

// Dashboard loads the landing view. The reads run concurrently and land in
// the cache, so later reads of the same keys are served locally.
func (a *App) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.User, err = a.reg.Users.Me(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Enrolled, err = a.reg.Courses.Enrolled(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Bookmarks, err = a.reg.Clips.Bookmarks(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Subscription, err = a.reg.Billing.Subscription(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

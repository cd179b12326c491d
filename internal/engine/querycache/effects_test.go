package querycache_test

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

func seedCourses(c *querycache.Client) {
	c.SetData(domain.Courses.List(nil), []domain.Course{{ID: "1"}})
	c.SetData(domain.Courses.List(domain.Filters{"status": "published"}), []domain.Course{})
	c.SetData(domain.Courses.Detail("1"), domain.Course{ID: "1"})
	c.SetData(domain.Clips.Detail("9"), domain.Clip{ID: "9"})
}

func TestInvalidate_MarksPrefixStale(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithStaleTime(time.Hour))
		defer c.Close()
		seedCourses(c)

		n := c.Invalidate(domain.Courses.Lists())
		assert.Equal(t, 2, n)

		assert.Equal(t, querycache.Stale, c.State(domain.Courses.List(nil)))
		assert.Equal(t, querycache.Stale, c.State(domain.Courses.List(domain.Filters{"status": "published"})))
		assert.Equal(t, querycache.Fresh, c.State(domain.Courses.Detail("1")))
		assert.Equal(t, querycache.Fresh, c.State(domain.Clips.Detail("9")))

		// Stale data stays readable until it is refetched.
		v, ok := querycache.GetData[[]domain.Course](c, domain.Courses.List(nil))
		require.True(t, ok)
		assert.Len(t, v, 1)
	})
}

func TestInvalidate_NextReadRefetches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithStaleTime(time.Hour))
		defer c.Close()

		var calls atomic.Int32
		fetcher := constant(&calls, domain.Course{ID: "1"})
		key := domain.Courses.Detail("1")

		_, err := querycache.Fetch(context.Background(), c, key, fetcher)
		require.NoError(t, err)
		c.Invalidate(domain.Courses.All())

		_, err = querycache.Fetch(context.Background(), c, key, fetcher)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, querycache.Fresh, c.State(key))
	})
}

func TestInvalidate_DetachesInFlightFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithStaleTime(time.Hour))
		defer c.Close()

		key := domain.Courses.Detail("1")
		release := make(chan struct{})
		var calls atomic.Int32
		slow := func(context.Context) (domain.Course, error) {
			calls.Add(1)
			<-release
			return domain.Course{ID: "1", Title: "old"}, nil
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = querycache.Fetch(context.Background(), c, key, slow)
		}()
		synctest.Wait()

		c.Invalidate(domain.Courses.All())
		close(release)
		<-done
		synctest.Wait()

		assert.Equal(t, querycache.Stale, c.State(key), "a result started before invalidation is stale")

		v, err := querycache.Fetch(context.Background(), c, key, func(context.Context) (domain.Course, error) {
			calls.Add(1)
			return domain.Course{ID: "1", Title: "new"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "new", v.Title)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestRemove_DropsEntriesAndLateResults(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithStaleTime(time.Hour))
		defer c.Close()
		seedCourses(c)

		key := domain.Courses.Detail("2")
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = querycache.Fetch(context.Background(), c, key, func(context.Context) (domain.Course, error) {
				<-release
				return domain.Course{ID: "2"}, nil
			})
		}()
		synctest.Wait()

		n := c.Remove(domain.Courses.Details())
		assert.Equal(t, 1, n)

		close(release)
		<-done
		synctest.Wait()

		assert.Equal(t, querycache.Absent, c.State(domain.Courses.Detail("1")))
		assert.Equal(t, querycache.Absent, c.State(key))
		_, ok := querycache.GetData[domain.Course](c, key)
		assert.False(t, ok)
		assert.Equal(t, querycache.Fresh, c.State(domain.Courses.List(nil)))
	})
}

func TestApply_Order(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithStaleTime(time.Hour))
		defer c.Close()
		seedCourses(c)

		detail := domain.Courses.Detail("1")
		c.Apply(querycache.Effects{
			Remove:     []domain.Key{domain.Courses.Details()},
			Seed:       []querycache.Seed{{Key: detail, Value: domain.Course{ID: "1", Title: "renamed"}}},
			Invalidate: []domain.Key{domain.Courses.Lists()},
		})

		v, ok := querycache.GetData[domain.Course](c, detail)
		require.True(t, ok, "seeds run after removals")
		assert.Equal(t, "renamed", v.Title)
		assert.Equal(t, querycache.Fresh, c.State(detail))
		assert.Equal(t, querycache.Stale, c.State(domain.Courses.List(nil)))

		c.Apply(querycache.Effects{
			Seed:       []querycache.Seed{{Key: detail, Value: domain.Course{ID: "1"}}},
			Invalidate: []domain.Key{domain.Courses.All()},
		})
		assert.Equal(t, querycache.Stale, c.State(detail), "invalidations run after seeds")
	})
}

func TestSetData_WinsOverInFlightFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithStaleTime(time.Hour))
		defer c.Close()

		key := domain.Courses.Detail("1")
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = querycache.Fetch(context.Background(), c, key, func(context.Context) (domain.Course, error) {
				<-release
				return domain.Course{ID: "1", Title: "server"}, nil
			})
		}()
		synctest.Wait()

		c.SetData(key, domain.Course{ID: "1", Title: "seeded"})
		close(release)
		<-done
		synctest.Wait()

		v, ok := querycache.GetData[domain.Course](c, key)
		require.True(t, ok)
		assert.Equal(t, "seeded", v.Title)
		assert.Equal(t, querycache.Fresh, c.State(key))
	})
}

func TestClear(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithStaleTime(time.Hour))
		defer c.Close()
		seedCourses(c)

		c.Clear()
		assert.Empty(t, c.Keys())
	})
}

func TestKeys_Sorted(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient()
		defer c.Close()

		c.SetData(domain.Users.Me(), domain.User{ID: "u"})
		c.SetData(domain.Courses.Detail("1"), domain.Course{ID: "1"})

		keys := c.Keys()
		require.Len(t, keys, 2)
		assert.True(t, keys[0].Equal(domain.Courses.Detail("1")))
		assert.True(t, keys[1].Equal(domain.Users.Me()))
	})
}

func TestGC_EvictsUnobservedEntries(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := querycache.NewClient(querycache.WithGCTime(5 * time.Minute))
		defer c.Close()

		c.SetData(domain.Users.Me(), domain.User{ID: "u"})

		time.Sleep(4 * time.Minute)
		assert.Equal(t, querycache.Stale, c.State(domain.Users.Me()))

		time.Sleep(2 * time.Minute)
		synctest.Wait()
		assert.Equal(t, querycache.Absent, c.State(domain.Users.Me()))
	})
}

package app_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reel/internal/adapters/tokenstore"
	"go.trai.ch/reel/internal/app"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/core/ports/mocks"
	"go.trai.ch/reel/internal/engine/querycache"
	"go.trai.ch/reel/internal/engine/registry"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	app      *app.App
	gw       *mocks.MockGateway
	cache    *querycache.Client
	notifier *mocks.MockNotifier
}

func newAppFixture(t *testing.T) appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	cache := querycache.NewClient(querycache.WithStaleTime(time.Hour))
	t.Cleanup(cache.Close)
	notifier := mocks.NewMockNotifier(ctrl)

	reg, err := registry.New(gw, cache, notifier)
	require.NoError(t, err)

	log := quietLogger(t)
	session := app.NewSession(gw, tokenstore.NewMemoryStore("tok"), cache, mocks.NewMockNavigator(ctrl), log)
	return appFixture{app: app.New(session, reg, log), gw: gw, cache: cache, notifier: notifier}
}

func TestApp_Dashboard(t *testing.T) {
	f := newAppFixture(t)
	f.gw.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).Times(4).
		DoAndReturn(func(_ context.Context, req ports.Request, out any) error {
			switch req.Path {
			case "/users/me":
				respond(t, out, domain.User{ID: "u1"})
			case "/courses/enrolled":
				respond(t, out, []domain.Course{{ID: "c1"}})
			case "/clips/bookmarks":
				respond(t, out, []domain.Clip{{ID: "k1"}})
			case "/billing/subscription":
				respond(t, out, domain.Subscription{PlanID: "pro"})
			default:
				t.Errorf("unexpected path %s", req.Path)
			}
			return nil
		})

	d, err := f.app.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", d.User.ID)
	assert.Equal(t, []domain.Course{{ID: "c1"}}, d.Enrolled)
	assert.Equal(t, []domain.Clip{{ID: "k1"}}, d.Bookmarks)
	assert.Equal(t, "pro", d.Subscription.PlanID)

	// Every read landed in the cache.
	for _, key := range []domain.Key{
		domain.Users.Me(), domain.Courses.Enrolled(), domain.Clips.Bookmarks(), domain.Billing.Subscription(),
	} {
		assert.Equal(t, querycache.Fresh, f.cache.State(key), key.String())
	}
}

func TestApp_DashboardFailsOnFirstError(t *testing.T) {
	f := newAppFixture(t)
	failure := &domain.APIError{Status: http.StatusServiceUnavailable, Method: http.MethodGet, Path: "/billing/subscription"}
	f.gw.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(_ context.Context, req ports.Request, _ any) error {
			if req.Path == "/billing/subscription" {
				return failure
			}
			return nil
		})

	_, err := f.app.Dashboard(context.Background())
	require.ErrorIs(t, err, failure)
}

func TestApp_Graph(t *testing.T) {
	f := newAppFixture(t)

	entries := f.app.Graph()
	require.Len(t, entries, len(registry.AllMutations()))

	byName := make(map[string][]string, len(entries))
	for _, e := range entries {
		byName[e.Mutation] = e.Effects
	}
	assert.Equal(t, []string{
		`invalidate ["courses","enrolled"]`,
		`invalidate ["courses","detail","{id}"]`,
		`invalidate ["courses","detail","{id}","progress"]`,
	}, byName["course.enroll"])
	assert.Empty(t, byName["export.request"])
}

func TestApp_UploadClip(t *testing.T) {
	f := newAppFixture(t)
	path := filepath.Join(t.TempDir(), "intro.mp4")
	require.NoError(t, os.WriteFile(path, []byte("video-bytes"), 0o600))

	f.gw.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.UploadRequest, out any) error {
			assert.Equal(t, "/clips/upload", req.Path)
			assert.Equal(t, "intro.mp4", req.FileName)
			assert.Equal(t, int64(len("video-bytes")), req.Size)
			assert.Equal(t, map[string]string{"title": "intro.mp4"}, req.Fields)
			body, err := io.ReadAll(req.File)
			assert.NoError(t, err)
			assert.Equal(t, "video-bytes", string(body))
			respond(t, out, domain.Clip{ID: "c9", Title: "intro.mp4"})
			return nil
		})
	f.notifier.EXPECT().Success("Clip uploaded")

	clip, err := f.app.UploadClip(context.Background(), app.UploadOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "c9", clip.ID)
	assert.Equal(t, querycache.Fresh, f.cache.State(domain.Clips.Detail("c9")))
}

func TestApp_UploadClipMissingFile(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.app.UploadClip(context.Background(), app.UploadOptions{Path: filepath.Join(t.TempDir(), "nope.mp4")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())
}

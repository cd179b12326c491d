package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reel/internal/adapters/gateway"
	"go.trai.ch/reel/internal/adapters/tokenstore"
	"go.trai.ch/reel/internal/app"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/core/ports/mocks"
	"go.trai.ch/reel/internal/engine/querycache"
	"go.uber.org/mock/gomock"
)

type sessionFixture struct {
	session   *app.Session
	gw        *mocks.MockGateway
	tokens    *tokenstore.MemoryStore
	cache     *querycache.Client
	navigator *mocks.MockNavigator
}

func newSessionFixture(t *testing.T, token string) sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := sessionFixture{
		gw:        mocks.NewMockGateway(ctrl),
		tokens:    tokenstore.NewMemoryStore(token),
		cache:     querycache.NewClient(querycache.WithStaleTime(time.Hour)),
		navigator: mocks.NewMockNavigator(ctrl),
	}
	t.Cleanup(f.cache.Close)
	f.session = app.NewSession(f.gw, f.tokens, f.cache, f.navigator, quietLogger(t))
	return f
}

func TestSession_Login(t *testing.T) {
	f := newSessionFixture(t, "")
	f.cache.SetData(domain.Courses.Enrolled(), []domain.Course{{ID: "old"}})

	creds := domain.Credentials{Email: "ada@example.com", Password: "secret"}
	f.gw.EXPECT().
		Do(gomock.Any(), ports.Request{Method: http.MethodPost, Path: "/auth/login", Body: creds}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ ports.Request, out any) error {
			respond(t, out, domain.Session{Token: "tok-1", User: domain.User{ID: "u1", Email: creds.Email}})
			return nil
		})

	user, err := f.session.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	token, _ := f.tokens.Token()
	assert.Equal(t, "tok-1", token)

	me, ok := querycache.GetData[domain.User](f.cache, domain.Users.Me())
	require.True(t, ok)
	assert.Equal(t, user, me)
	assert.Equal(t, querycache.Absent, f.cache.State(domain.Courses.Enrolled()), "previous identity's data is dropped")
}

func TestSession_LoginValidatesFirst(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
		want  string
	}{
		{"missing email", domain.Credentials{Password: "x"}, "email is required"},
		{"malformed email", domain.Credentials{Email: "ada", Password: "x"}, "email must be a valid email address"},
		{"missing password", domain.Credentials{Email: "ada@example.com"}, "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t, "")

			_, err := f.session.Login(context.Background(), tt.creds)
			require.Error(t, err)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSession_LoginRejected(t *testing.T) {
	f := newSessionFixture(t, "")
	rejected := &domain.APIError{Status: http.StatusUnauthorized, Method: http.MethodPost, Path: "/auth/login"}
	f.gw.EXPECT().Do(gomock.Any(), request(http.MethodPost, "/auth/login"), gomock.Any()).Return(rejected)

	_, err := f.session.Login(context.Background(), domain.Credentials{Email: "ada@example.com", Password: "bad"})
	require.ErrorIs(t, err, rejected)

	token, _ := f.tokens.Token()
	assert.Empty(t, token)
}

func TestSession_Logout(t *testing.T) {
	f := newSessionFixture(t, "tok-1")
	f.cache.SetData(domain.Users.Me(), domain.User{ID: "u1"})
	f.gw.EXPECT().Do(gomock.Any(), request(http.MethodPost, "/auth/logout"), nil).
		Return(errors.New("connection refused"))

	require.NoError(t, f.session.Logout(context.Background()))

	token, _ := f.tokens.Token()
	assert.Empty(t, token)
	assert.Empty(t, f.cache.Keys())
}

func TestSession_LogoutWithoutToken(t *testing.T) {
	f := newSessionFixture(t, "")

	require.NoError(t, f.session.Logout(context.Background()))
}

func TestSession_RefreshCollapsesConcurrentCalls(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newSessionFixture(t, "tok-1")
		defer f.cache.Close()
		f.cache.SetData(domain.Courses.Enrolled(), []domain.Course{{ID: "1"}})

		release := make(chan struct{})
		var calls atomic.Int32
		f.gw.EXPECT().Do(gomock.Any(), request(http.MethodPost, "/auth/refresh"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ ports.Request, out any) error {
				calls.Add(1)
				<-release
				respond(t, out, domain.Session{Token: "tok-2", User: domain.User{ID: "u1"}})
				return nil
			})

		var wg sync.WaitGroup
		tokens := make([]string, 5)
		for i := range tokens {
			wg.Go(func() {
				tok, err := f.session.Refresh(context.Background())
				assert.NoError(t, err)
				tokens[i] = tok
			})
		}
		synctest.Wait()
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, tok := range tokens {
			assert.Equal(t, "tok-2", tok)
		}
		stored, _ := f.tokens.Token()
		assert.Equal(t, "tok-2", stored)
		assert.Equal(t, querycache.Fresh, f.cache.State(domain.Courses.Enrolled()), "refresh keeps the cache")
	})
}

func TestSession_RefreshRequiresToken(t *testing.T) {
	f := newSessionFixture(t, "")

	_, err := f.session.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrNotLoggedIn)
}

func TestSession_PasswordFlows(t *testing.T) {
	f := newSessionFixture(t, "")
	ctx := context.Background()

	err := f.session.ForgotPassword(ctx, "not-an-email")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = f.session.ResetPassword(ctx, domain.PasswordReset{Token: "t", Password: "short", ConfirmPassword: "short"})
	assert.ErrorContains(t, err, "at least 8 characters")

	f.gw.EXPECT().Do(gomock.Any(), request(http.MethodPost, "/auth/forgot-password"), nil).Return(nil)
	require.NoError(t, f.session.ForgotPassword(ctx, " ada@example.com "))

	f.gw.EXPECT().Do(gomock.Any(), request(http.MethodPost, "/auth/reset-password"), nil).Return(nil)
	require.NoError(t, f.session.ResetPassword(ctx,
		domain.PasswordReset{Token: "t", Password: "long-enough", ConfirmPassword: "long-enough"}))
}

func TestSession_HandleAuthExpired(t *testing.T) {
	f := newSessionFixture(t, "")
	f.cache.SetData(domain.Courses.Detail("1"), domain.Course{ID: "1"})
	f.navigator.EXPECT().Navigate(domain.RouteLogin)

	f.session.HandleAuthExpired(domain.AuthExpired{Method: http.MethodGet, Path: "/courses/1"})

	assert.Empty(t, f.cache.Keys())
}

func TestSession_HandleAuthExpiredIgnoresRejectedLogin(t *testing.T) {
	f := newSessionFixture(t, "")
	f.cache.SetData(domain.Courses.Detail("1"), domain.Course{ID: "1"})

	f.session.HandleAuthExpired(domain.AuthExpired{Method: http.MethodPost, Path: "/auth/login"})

	assert.Len(t, f.cache.Keys(), 1)
	assert.False(t, f.session.Expired())
}

func TestSession_HandleAuthExpiredOnOtherAuthEndpoints(t *testing.T) {
	for _, path := range []string{"/auth/refresh", "/auth/logout"} {
		t.Run(path, func(t *testing.T) {
			f := newSessionFixture(t, "")
			f.cache.SetData(domain.Users.Me(), domain.User{ID: "u1"})
			f.navigator.EXPECT().Navigate(domain.RouteLogin)

			f.session.HandleAuthExpired(domain.AuthExpired{Method: http.MethodPost, Path: path})

			assert.Empty(t, f.cache.Keys())
			assert.True(t, f.session.Expired())
		})
	}
}

func TestSession_RefreshUnauthorizedRedirectsToLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	tokens := tokenstore.NewMemoryStore("tok-1")
	cache := querycache.NewClient()
	defer cache.Close()
	cache.SetData(domain.Users.Me(), domain.User{ID: "u1"})

	navigator := mocks.NewMockNavigator(ctrl)
	navigator.EXPECT().Navigate(domain.RouteLogin)

	gw := gateway.New(srv.URL, tokens, quietLogger(t))
	session := app.NewSession(gw, tokens, cache, navigator, quietLogger(t))
	gw.AddAuthListener(session)

	_, err := session.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthExpired)

	token, _ := tokens.Token()
	assert.Empty(t, token)
	assert.Empty(t, cache.Keys())
	assert.True(t, session.Expired())
}

func TestSession_LoginClearsExpired(t *testing.T) {
	f := newSessionFixture(t, "")
	f.navigator.EXPECT().Navigate(domain.RouteLogin)
	f.session.HandleAuthExpired(domain.AuthExpired{Method: http.MethodGet, Path: "/courses"})
	require.True(t, f.session.Expired())

	f.gw.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ ports.Request, out any) error {
			respond(t, out, domain.Session{Token: "tok-2"})
			return nil
		})

	_, err := f.session.Login(context.Background(), domain.Credentials{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.False(t, f.session.Expired())
}

func TestSession_UnauthorizedResponseRedirectsToLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	tokens := tokenstore.NewMemoryStore("tok-1")
	cache := querycache.NewClient()
	defer cache.Close()
	cache.SetData(domain.Users.Me(), domain.User{ID: "u1"})

	navigator := mocks.NewMockNavigator(ctrl)
	navigator.EXPECT().Navigate(domain.RouteLogin)

	gw := gateway.New(srv.URL, tokens, quietLogger(t))
	gw.AddAuthListener(app.NewSession(gw, tokens, cache, navigator, quietLogger(t)))

	err := gw.Do(context.Background(), ports.Request{Path: "/courses"}, nil)
	require.ErrorIs(t, err, domain.ErrAuthExpired)

	token, _ := tokens.Token()
	assert.Empty(t, token)
	assert.Empty(t, cache.Keys())
}

func TestSession_WatchToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenStore(ctrl)
	cache := querycache.NewClient()
	defer cache.Close()

	var onChange func(string)
	tokens.EXPECT().Token().Return("tok-1", nil)
	tokens.EXPECT().Watch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(string)) error {
			onChange = fn
			return nil
		})

	session := app.NewSession(mocks.NewMockGateway(ctrl), tokens, cache, mocks.NewMockNavigator(ctrl), quietLogger(t))
	require.NoError(t, session.WatchToken(context.Background()))
	require.NotNil(t, onChange)

	cache.SetData(domain.Users.Me(), domain.User{ID: "u1"})
	onChange("tok-1")
	assert.Len(t, cache.Keys(), 1, "same token keeps the cache")

	onChange("tok-2")
	assert.Empty(t, cache.Keys(), "a different identity clears the cache")

	cache.SetData(domain.Users.Me(), domain.User{ID: "u2"})
	onChange("")
	assert.Empty(t, cache.Keys())
}

func TestSession_WatchTokenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenStore(ctrl)
	tokens.EXPECT().Token().Return("", nil)
	tokens.EXPECT().Watch(gomock.Any(), gomock.Any()).Return(errors.New("too many open files"))

	cache := querycache.NewClient()
	defer cache.Close()

	session := app.NewSession(mocks.NewMockGateway(ctrl), tokens, cache, mocks.NewMockNavigator(ctrl), quietLogger(t))

	err := session.WatchToken(context.Background())
	assert.ErrorContains(t, err, domain.ErrTokenWatchFailed.Error())
}

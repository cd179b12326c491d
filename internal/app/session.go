package app

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/engine/querycache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	authPathPrefix = "/auth/"
	loginPath      = authPathPrefix + "login"
)

// Session owns the sign-in lifecycle. It is the only component besides the
// gateway that writes the token store.
type Session struct {
	gw        ports.Gateway
	tokens    ports.TokenStore
	cache     *querycache.Client
	navigator ports.Navigator
	logger    ports.Logger

	refreshGroup singleflight.Group

	mu       sync.Mutex
	lastSeen string
	expired  atomic.Bool
}

// NewSession creates a Session.
func NewSession(
	gw ports.Gateway,
	tokens ports.TokenStore,
	cache *querycache.Client,
	navigator ports.Navigator,
	logger ports.Logger,
) *Session {
	return &Session{
		gw:        gw,
		tokens:    tokens,
		cache:     cache,
		navigator: navigator,
		logger:    logger,
	}
}

// Login exchanges credentials for a token. Credentials are validated before
// any request is sent.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if err := domain.Validate(creds); err != nil {
		return domain.User{}, err
	}

	var sess domain.Session
	req := ports.Request{Method: http.MethodPost, Path: loginPath, Body: creds}
	if err := s.gw.Do(ctx, req, &sess); err != nil {
		return domain.User{}, err
	}
	if err := s.adopt(sess, true); err != nil {
		return domain.User{}, err
	}
	return sess.User, nil
}

// Logout ends the session. The server is told on a best-effort basis; the
// local token and cache are dropped regardless.
func (s *Session) Logout(ctx context.Context) error {
	token, err := s.tokens.Token()
	if err != nil {
		return err
	}
	if token != "" {
		req := ports.Request{Method: http.MethodPost, Path: authPathPrefix + "logout"}
		if err := s.gw.Do(ctx, req, nil); err != nil {
			s.logger.Warn("server logout failed: " + err.Error())
		}
	}

	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.setLastSeen("")
	s.cache.Clear()
	return nil
}

// Refresh trades the current token for a new one. Concurrent calls share
// one request.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		token, err := s.tokens.Token()
		if err != nil {
			return "", err
		}
		if token == "" {
			return "", domain.ErrNotLoggedIn
		}

		var sess domain.Session
		req := ports.Request{Method: http.MethodPost, Path: authPathPrefix + "refresh"}
		if err := s.gw.Do(ctx, req, &sess); err != nil {
			return "", err
		}
		if err := s.adopt(sess, false); err != nil {
			return "", err
		}
		return sess.Token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ForgotPassword asks the server to send a reset link to email.
func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	in := domain.PasswordForgot{Email: strings.TrimSpace(email)}
	if err := domain.Validate(in); err != nil {
		return err
	}
	req := ports.Request{Method: http.MethodPost, Path: authPathPrefix + "forgot-password", Body: in}
	return s.gw.Do(ctx, req, nil)
}

// ResetPassword sets a new password using a reset token.
func (s *Session) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	if err := domain.Validate(reset); err != nil {
		return err
	}
	req := ports.Request{Method: http.MethodPost, Path: authPathPrefix + "reset-password", Body: reset}
	return s.gw.Do(ctx, req, nil)
}

// OnAuthExpired implements ports.AuthListener.
func (s *Session) OnAuthExpired(evt domain.AuthExpired) {
	s.HandleAuthExpired(evt)
}

// HandleAuthExpired drops every cached read and sends the user to sign in.
// A rejected sign-in is wrong credentials, not an expired session, and is
// left to the caller.
func (s *Session) HandleAuthExpired(evt domain.AuthExpired) {
	if evt.Path == loginPath {
		return
	}
	s.logger.Warn("session expired during " + evt.Method + " " + evt.Path)
	s.expired.Store(true)
	s.setLastSeen("")
	s.cache.Clear()
	s.navigator.Navigate(domain.RouteLogin)
}

// Expired reports whether the session was ended by a 401 and the user has
// been sent to sign in since the last successful sign-in.
func (s *Session) Expired() bool {
	return s.expired.Load()
}

// WatchToken follows token changes made by other processes. A different
// token means a different identity, so the cache is cleared.
func (s *Session) WatchToken(ctx context.Context) error {
	token, err := s.tokens.Token()
	if err != nil {
		return err
	}
	s.setLastSeen(token)

	if err := s.tokens.Watch(ctx, s.tokenChanged); err != nil {
		return domain.Wrap(err, domain.ErrTokenWatchFailed)
	}
	return nil
}

func (s *Session) tokenChanged(token string) {
	s.mu.Lock()
	changed := token != s.lastSeen
	s.lastSeen = token
	s.mu.Unlock()

	if !changed {
		return
	}
	if token == "" {
		s.logger.Info("signed out by another process")
	} else {
		s.logger.Info("signed in by another process")
	}
	s.cache.Clear()
}

// adopt stores the token of a session and primes the current user. A new
// sign-in starts from an empty cache; a refresh keeps it.
func (s *Session) adopt(sess domain.Session, signIn bool) error {
	if sess.Token == "" {
		return zerr.With(zerr.Wrap(domain.ErrAPIParseFailed, ""), "field", "token")
	}

	prev := s.swapLastSeen(sess.Token)
	if err := s.tokens.SetToken(sess.Token); err != nil {
		s.setLastSeen(prev)
		return err
	}
	s.expired.Store(false)
	if signIn {
		s.cache.Clear()
	}
	if sess.User.ID != "" {
		s.cache.SetData(domain.Users.Me(), sess.User)
	}
	return nil
}

func (s *Session) setLastSeen(token string) {
	s.mu.Lock()
	s.lastSeen = token
	s.mu.Unlock()
}

func (s *Session) swapLastSeen(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.lastSeen
	s.lastSeen = token
	return prev
}

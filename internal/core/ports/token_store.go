package ports

import "context"

// TokenStore holds the process-wide bearer token in durable storage.
//
// Only the gateway's 401 handling and the sign-in flow write to it; every
// other component only reads.
//
//go:generate go run go.uber.org/mock/mockgen -source=token_store.go -destination=mocks/mock_token_store.go -package=mocks
type TokenStore interface {
	// Token returns the stored token, or "" when none is stored.
	Token() (string, error)
	// SetToken persists a new token.
	SetToken(token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
	// Watch calls fn with the current token whenever it changes outside this
	// process. It returns once watching has started and stops when ctx is done.
	Watch(ctx context.Context, fn func(token string)) error
}

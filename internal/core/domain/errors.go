package domain

import "go.trai.ch/zerr"

// Errors of a kind are built with Wrap when there is a cause, or with
// zerr.Wrap(kind, "") when only metadata is attached. zerr.With on a bare
// sentinel copies it, and the copy no longer matches the sentinel.

var (
	// ErrAuthExpired is matched by API errors carrying a 401 status.
	ErrAuthExpired = zerr.New("authentication expired")

	// ErrAPIRequestFailed is returned when a request cannot be built or sent.
	ErrAPIRequestFailed = zerr.New("failed to make API request")

	// ErrAPIParseFailed is returned when a response body cannot be decoded.
	ErrAPIParseFailed = zerr.New("failed to parse API response")

	// ErrRequestEncodeFailed is returned when a request body cannot be encoded.
	ErrRequestEncodeFailed = zerr.New("failed to encode request body")

	// ErrUploadFailed is returned when a file upload fails at the transport level.
	ErrUploadFailed = zerr.New("upload failed")

	// ErrUploadCanceled is returned when a file upload is canceled by the caller.
	ErrUploadCanceled = zerr.New("upload canceled")

	// ErrQueryDisabled is returned when a query is read while its required identifier is missing.
	ErrQueryDisabled = zerr.New("query is disabled")

	// ErrCacheTypeMismatch is returned when a cached value does not have the type a read expects.
	ErrCacheTypeMismatch = zerr.New("cached value has unexpected type")

	// ErrUndeclaredMutation is returned when a mutation has no declared cache effects.
	ErrUndeclaredMutation = zerr.New("mutation has no declared cache effects")

	// ErrUnknownMutation is returned when effects are requested for a mutation the graph does not know.
	ErrUnknownMutation = zerr.New("unknown mutation")

	// ErrDependencyKeyMissing is returned when a non-passive dependency has no key function.
	ErrDependencyKeyMissing = zerr.New("dependency has no key function")

	// ErrValidation is returned when input fails client-side validation.
	ErrValidation = zerr.New("validation failed")

	// ErrNotLoggedIn is returned when an operation requires a stored token and none exists.
	ErrNotLoggedIn = zerr.New("not logged in")

	// ErrTokenReadFailed is returned when the stored token cannot be read.
	ErrTokenReadFailed = zerr.New("failed to read auth token")

	// ErrTokenWriteFailed is returned when the token cannot be persisted.
	ErrTokenWriteFailed = zerr.New("failed to write auth token")

	// ErrTokenWatchFailed is returned when the token file cannot be watched.
	ErrTokenWatchFailed = zerr.New("failed to watch auth token")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file or environment cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config")

	// ErrConfigInvalid is returned when the loaded configuration is unusable.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrTelemetrySetupFailed is returned when the trace exporter cannot be created.
	ErrTelemetrySetupFailed = zerr.New("failed to set up telemetry")

	// ErrFileOpenFailed is returned when a file to upload cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")
)

// Wrap marks cause as an error of the given kind. The result reads
// "kind: cause" and matches both kind and cause with errors.Is.
func Wrap(cause, kind error) error {
	if cause == nil {
		return nil
	}
	return &kindError{kind: kind, cause: cause}
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string { return e.kind.Error() + ": " + e.cause.Error() }

// Message returns the kind alone, so loggers can render the cause separately.
func (e *kindError) Message() string { return e.kind.Error() }

func (e *kindError) Unwrap() error { return e.cause }

func (e *kindError) Is(target error) bool { return target == e.kind }

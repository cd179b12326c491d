// Package registry declares every read and write of the platform API on top
// of the query cache. Reads are cached under the domain key taxonomy; writes
// apply their declared cache effects before returning.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/engine/querycache"
)

// Registry is the typed surface over the gateway and the query cache.
type Registry struct {
	gw       ports.Gateway
	cache    *querycache.Client
	graph    *Graph
	notifier ports.Notifier

	Admin         Admin
	Analytics     Analytics
	Billing       Billing
	Clips         Clips
	Courses       Courses
	Organizations Organizations
	Quizzes       Quizzes
	Search        Search
	Uploads       Uploads
	Users         Users
}

// New creates a Registry using the default dependency graph.
func New(gw ports.Gateway, cache *querycache.Client, notifier ports.Notifier) (*Registry, error) {
	graph, err := DefaultGraph()
	if err != nil {
		return nil, err
	}

	r := &Registry{gw: gw, cache: cache, graph: graph, notifier: notifier}
	r.Admin = Admin{r}
	r.Analytics = Analytics{r}
	r.Billing = Billing{r}
	r.Clips = Clips{r}
	r.Courses = Courses{r}
	r.Organizations = Organizations{r}
	r.Quizzes = Quizzes{r}
	r.Search = Search{r}
	r.Uploads = Uploads{r}
	r.Users = Users{r}
	return r, nil
}

// Graph returns the dependency graph used to resolve mutation effects.
func (r *Registry) Graph() *Graph {
	return r.graph
}

// Cache returns the underlying query cache.
func (r *Registry) Cache() *querycache.Client {
	return r.cache
}

// DefaultGraph declares the cache effects of every platform mutation.
func DefaultGraph() (*Graph, error) {
	var deps []Dependency
	deps = append(deps, courseDependencies()...)
	deps = append(deps, clipDependencies()...)
	deps = append(deps, quizDependencies()...)
	deps = append(deps, adminDependencies()...)
	deps = append(deps, billingDependencies()...)
	deps = append(deps, organizationDependencies()...)
	deps = append(deps, userDependencies()...)
	deps = append(deps, uploadDependencies()...)
	return NewGraph(deps...)
}

func get[T any](r *Registry, path string) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return send[T](ctx, r, http.MethodGet, path, nil)
	}
}

func send[T any](ctx context.Context, r *Registry, method, path string, body any) (T, error) {
	var out T
	err := r.gw.Do(ctx, ports.Request{Method: method, Path: path, Body: body}, &out)
	return out, err
}

func query[T any](
	ctx context.Context, r *Registry, key domain.Key, path string, opts []querycache.QueryOption,
) (T, error) {
	return querycache.Fetch(ctx, r.cache, key, get[T](r, path), opts...)
}

func watch[T any](
	ctx context.Context, r *Registry, key domain.Key, path string, opts []querycache.QueryOption,
) *querycache.Observer[T] {
	return querycache.Observe(ctx, r.cache, key, get[T](r, path), opts...)
}

// mutate performs a write. On success the declared effects are applied to
// the cache before mutate returns; failures are reported and returned as is.
func mutate[T any](
	ctx context.Context, r *Registry, kind MutationKind, call func(context.Context) (T, error), ref func(T) Ref,
) (T, error) {
	res, err := call(ctx)
	if err != nil {
		if !canceled(err) {
			r.notifier.Error(kind.FailureTitle(), errorMessage(err))
		}
		return res, err
	}

	eff, err := r.graph.Effects(kind, ref(res))
	if err != nil {
		return res, err
	}
	r.cache.Apply(eff)
	r.notifier.Success(kind.SuccessMessage())
	return res, nil
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrUploadCanceled)
}

func errorMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return http.StatusText(apiErr.Status)
	}
	return err.Error()
}

// requireID disables a query whose identifier is missing.
func requireID(opts []querycache.QueryOption, ids ...string) []querycache.QueryOption {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return append(opts, querycache.Enabled(false))
		}
	}
	return opts
}

// pathf formats an endpoint path, escaping every id.
func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

func noRef[T any](T) Ref { return Ref{} }

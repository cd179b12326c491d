package registry

import (
	"context"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

func userDependencies() []Dependency {
	return []Dependency{
		Seeds(Fixed(domain.Users.Me()), ProfileUpdate),
		Invalidates(ByID(domain.Users.Detail), ProfileUpdate),
	}
}

// Users reads user accounts and updates the current profile.
type Users struct{ r *Registry }

// Me returns the signed-in user.
func (u Users) Me(ctx context.Context, opts ...querycache.QueryOption) (domain.User, error) {
	return query[domain.User](ctx, u.r, domain.Users.Me(), "/users/me", opts)
}

// Get returns one user.
func (u Users) Get(ctx context.Context, id string, opts ...querycache.QueryOption) (domain.User, error) {
	return query[domain.User](ctx, u.r, domain.Users.Detail(id), pathf("/users/%s", id), requireID(opts, id))
}

// UpdateProfile changes the signed-in user's profile.
func (u Users) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (domain.User, error) {
	if err := domain.Validate(upd); err != nil {
		return domain.User{}, err
	}
	return mutate(ctx, u.r, ProfileUpdate,
		func(ctx context.Context) (domain.User, error) {
			return send[domain.User](ctx, u.r, http.MethodPatch, "/users/me", upd)
		},
		func(res domain.User) Ref { return Ref{ID: res.ID, Result: res} },
	)
}

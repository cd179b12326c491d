package registry

import (
	"context"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

func organizationDependencies() []Dependency {
	return []Dependency{
		Seeds(ByParent(domain.Organizations.Settings), OrganizationSettingsUpdate),
		Invalidates(ByParent(domain.Organizations.Members), MemberInvite, MemberRemove),
	}
}

// Organizations reads and writes organization settings and membership.
type Organizations struct{ r *Registry }

// Get returns one organization.
func (o Organizations) Get(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) (domain.Organization, error) {
	return query[domain.Organization](ctx, o.r, domain.Organizations.Detail(id),
		pathf("/organizations/%s", id), requireID(opts, id))
}

// Members returns the members of an organization.
func (o Organizations) Members(ctx context.Context, id string, opts ...querycache.QueryOption) ([]domain.Member, error) {
	return query[[]domain.Member](ctx, o.r, domain.Organizations.Members(id),
		pathf("/organizations/%s/members", id), requireID(opts, id))
}

// Settings returns the settings of an organization.
func (o Organizations) Settings(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) (domain.OrganizationSettings, error) {
	return query[domain.OrganizationSettings](ctx, o.r, domain.Organizations.Settings(id),
		pathf("/organizations/%s/settings", id), requireID(opts, id))
}

// UpdateSettings replaces the settings of an organization.
func (o Organizations) UpdateSettings(
	ctx context.Context, id string, settings domain.OrganizationSettings,
) (domain.OrganizationSettings, error) {
	return mutate(ctx, o.r, OrganizationSettingsUpdate,
		func(ctx context.Context) (domain.OrganizationSettings, error) {
			return send[domain.OrganizationSettings](ctx, o.r, http.MethodPut,
				pathf("/organizations/%s/settings", id), settings)
		},
		func(res domain.OrganizationSettings) Ref { return Ref{ParentID: id, Result: res} },
	)
}

// Invite adds a member to an organization.
func (o Organizations) Invite(ctx context.Context, id string, inv domain.Invitation) (domain.Member, error) {
	if err := domain.Validate(inv); err != nil {
		return domain.Member{}, err
	}
	return mutate(ctx, o.r, MemberInvite,
		func(ctx context.Context) (domain.Member, error) {
			return send[domain.Member](ctx, o.r, http.MethodPost, pathf("/organizations/%s/members", id), inv)
		},
		func(res domain.Member) Ref { return Ref{ID: res.UserID, ParentID: id, Result: res} },
	)
}

// RemoveMember removes a user from an organization.
func (o Organizations) RemoveMember(ctx context.Context, id, userID string) error {
	_, err := mutate(ctx, o.r, MemberRemove,
		func(ctx context.Context) (struct{}, error) {
			return send[struct{}](ctx, o.r, http.MethodDelete, pathf("/organizations/%s/members/%s", id, userID), nil)
		},
		func(struct{}) Ref { return Ref{ID: userID, ParentID: id} },
	)
	return err
}

package registry

import (
	"context"
	"net/http"
	"time"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

// StatsInterval is how often dashboard statistics are polled while watched.
const StatsInterval = 30 * time.Second

func adminDependencies() []Dependency {
	return []Dependency{
		Seeds(ByID(domain.Admin.Customer), CustomerCreate, CustomerUpdate),
		Removes(ByID(domain.Admin.Customer), CustomerDelete),
		Invalidates(Fixed(domain.Admin.Customers()), CustomerCreate, CustomerUpdate, CustomerDelete),
		Invalidates(Fixed(domain.Admin.Tasks()), TaskUpdate),
		Invalidates(Fixed(domain.Admin.Stats()), CustomerCreate, CustomerDelete, TaskUpdate),
	}
}

// Admin reads and writes the admin dashboard.
type Admin struct{ r *Registry }

// Customers returns the customers matching f.
func (a Admin) Customers(
	ctx context.Context, f domain.Filters, opts ...querycache.QueryOption,
) ([]domain.Customer, error) {
	return query[[]domain.Customer](ctx, a.r, domain.Admin.CustomerList(f), "/admin/customers"+f.Query(), opts)
}

// Customer returns one customer.
func (a Admin) Customer(ctx context.Context, id string, opts ...querycache.QueryOption) (domain.Customer, error) {
	return query[domain.Customer](ctx, a.r, domain.Admin.Customer(id),
		pathf("/admin/customers/%s", id), requireID(opts, id))
}

// Tasks returns the tasks matching f.
func (a Admin) Tasks(ctx context.Context, f domain.Filters, opts ...querycache.QueryOption) ([]domain.Task, error) {
	return query[[]domain.Task](ctx, a.r, domain.Admin.TaskList(f), "/admin/tasks"+f.Query(), opts)
}

// Stats returns the dashboard statistics.
func (a Admin) Stats(ctx context.Context, opts ...querycache.QueryOption) (domain.AdminStats, error) {
	return query[domain.AdminStats](ctx, a.r, domain.Admin.Stats(), "/admin/stats", opts)
}

// WatchStats observes the dashboard statistics, polling every StatsInterval
// unless opts say otherwise.
func (a Admin) WatchStats(
	ctx context.Context, opts ...querycache.QueryOption,
) *querycache.Observer[domain.AdminStats] {
	opts = append([]querycache.QueryOption{querycache.RefetchInterval(StatsInterval)}, opts...)
	return watch[domain.AdminStats](ctx, a.r, domain.Admin.Stats(), "/admin/stats", opts)
}

// CreateCustomer creates a customer.
func (a Admin) CreateCustomer(ctx context.Context, in domain.CustomerInput) (domain.Customer, error) {
	return mutate(ctx, a.r, CustomerCreate,
		func(ctx context.Context) (domain.Customer, error) {
			return send[domain.Customer](ctx, a.r, http.MethodPost, "/admin/customers", in)
		},
		func(res domain.Customer) Ref { return Ref{ID: res.ID, Result: res} },
	)
}

// UpdateCustomer changes a customer.
func (a Admin) UpdateCustomer(ctx context.Context, id string, in domain.CustomerInput) (domain.Customer, error) {
	return mutate(ctx, a.r, CustomerUpdate,
		func(ctx context.Context) (domain.Customer, error) {
			return send[domain.Customer](ctx, a.r, http.MethodPut, pathf("/admin/customers/%s", id), in)
		},
		func(res domain.Customer) Ref { return Ref{ID: id, Result: res} },
	)
}

// DeleteCustomer deletes a customer.
func (a Admin) DeleteCustomer(ctx context.Context, id string) error {
	_, err := mutate(ctx, a.r, CustomerDelete,
		func(ctx context.Context) (struct{}, error) {
			return send[struct{}](ctx, a.r, http.MethodDelete, pathf("/admin/customers/%s", id), nil)
		},
		func(struct{}) Ref { return Ref{ID: id} },
	)
	return err
}

// UpdateTask changes the status or title of a task.
func (a Admin) UpdateTask(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	return mutate(ctx, a.r, TaskUpdate,
		func(ctx context.Context) (domain.Task, error) {
			return send[domain.Task](ctx, a.r, http.MethodPatch, pathf("/admin/tasks/%s", id), task)
		},
		func(res domain.Task) Ref { return Ref{ID: id, Result: res} },
	)
}

package registry

import (
	"context"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

func billingDependencies() []Dependency {
	return []Dependency{
		Seeds(Fixed(domain.Billing.Subscription()), PlanChange, SubscriptionCancel),
		Invalidates(Fixed(domain.Billing.Invoices()), PlanChange, SubscriptionCancel),
		Passive(CheckoutCreate),
	}
}

// Billing reads and changes the organization's subscription.
type Billing struct{ r *Registry }

// Subscription returns the current subscription.
func (b Billing) Subscription(ctx context.Context, opts ...querycache.QueryOption) (domain.Subscription, error) {
	return query[domain.Subscription](ctx, b.r, domain.Billing.Subscription(), "/billing/subscription", opts)
}

// Invoices returns the invoice history.
func (b Billing) Invoices(ctx context.Context, opts ...querycache.QueryOption) ([]domain.Invoice, error) {
	return query[[]domain.Invoice](ctx, b.r, domain.Billing.Invoices(), "/billing/invoices", opts)
}

// Plans returns the purchasable plans.
func (b Billing) Plans(ctx context.Context, opts ...querycache.QueryOption) ([]domain.Plan, error) {
	return query[[]domain.Plan](ctx, b.r, domain.Billing.Plans(), "/billing/plans", opts)
}

// Checkout opens a hosted payment page for a plan.
func (b Billing) Checkout(ctx context.Context, planID string) (domain.CheckoutSession, error) {
	return mutate(ctx, b.r, CheckoutCreate,
		func(ctx context.Context) (domain.CheckoutSession, error) {
			return send[domain.CheckoutSession](ctx, b.r, http.MethodPost, "/billing/checkout",
				map[string]string{"planId": planID})
		},
		noRef[domain.CheckoutSession],
	)
}

// ChangePlan switches the subscription to another plan or seat count.
func (b Billing) ChangePlan(ctx context.Context, change domain.PlanChange) (domain.Subscription, error) {
	return mutate(ctx, b.r, PlanChange,
		func(ctx context.Context) (domain.Subscription, error) {
			return send[domain.Subscription](ctx, b.r, http.MethodPut, "/billing/subscription", change)
		},
		func(res domain.Subscription) Ref { return Ref{Result: res} },
	)
}

// Cancel cancels the subscription at the end of the period.
func (b Billing) Cancel(ctx context.Context) (domain.Subscription, error) {
	return mutate(ctx, b.r, SubscriptionCancel,
		func(ctx context.Context) (domain.Subscription, error) {
			return send[domain.Subscription](ctx, b.r, http.MethodPost, "/billing/subscription/cancel", nil)
		},
		func(res domain.Subscription) Ref { return Ref{Result: res} },
	)
}

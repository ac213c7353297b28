package entity

import (
	"context"
)

// Webhooks is the entity service for outbound webhooks. Beyond CRUD it
// exposes the delivery-side actions: test firing, activation toggling,
// and secret rotation.
type Webhooks struct {
	d Deps
}

// NewWebhooks creates the webhooks service.
func NewWebhooks(d Deps) *Webhooks {
	return &Webhooks{d: d}
}

// List returns a page of webhooks matching the filters.
func (s *Webhooks) List(ctx context.Context, filters WebhookFilters) (ListResult[Webhook], error) {
	return fetchList[Webhook](ctx, s.d, ResourceWebhooks, filters)
}

// Get returns a single webhook by id.
func (s *Webhooks) Get(ctx context.Context, id string) (*Webhook, error) {
	return fetchDetail[Webhook](ctx, s.d, ResourceWebhooks, id)
}

// Create adds a webhook.
func (s *Webhooks) Create(ctx context.Context, input WebhookInput) (*Webhook, error) {
	return createOne(ctx, s.d, ResourceWebhooks, input, func(w *Webhook) string { return w.ID })
}

// Update modifies a webhook.
func (s *Webhooks) Update(ctx context.Context, id string, input WebhookInput) (*Webhook, error) {
	return updateOne[Webhook](ctx, s.d, ResourceWebhooks, id, input)
}

// Delete removes a webhook.
func (s *Webhooks) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.d, ResourceWebhooks, id)
}

// Test fires a synthetic event at the webhook and returns the delivery
// outcome. Deliveries are ephemeral, so nothing is cached.
func (s *Webhooks) Test(ctx context.Context, id string) (*WebhookDelivery, error) {
	var delivery WebhookDelivery
	if err := s.d.API.Post(ctx, resourcePath(ResourceWebhooks, id, "test"), nil, &delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}

// Toggle flips the webhook's active flag.
func (s *Webhooks) Toggle(ctx context.Context, id string) (*Webhook, error) {
	return actionOne[Webhook](ctx, s.d, ResourceWebhooks, id, "toggle")
}

// RegenerateSecret rotates the webhook's signing secret. The response
// carries the new secret exactly once.
func (s *Webhooks) RegenerateSecret(ctx context.Context, id string) (*Webhook, error) {
	return actionOne[Webhook](ctx, s.d, ResourceWebhooks, id, "regenerate-secret")
}

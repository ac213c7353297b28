package entity

import (
	"context"
)

// Scopes is the entity service for project scopes.
type Scopes struct {
	d Deps
}

// NewScopes creates the scopes service.
func NewScopes(d Deps) *Scopes {
	return &Scopes{d: d}
}

func (s *Scopes) List(ctx context.Context, filters ScopeFilters) (ListResult[Scope], error) {
	return fetchList[Scope](ctx, s.d, ResourceScopes, filters)
}

func (s *Scopes) Get(ctx context.Context, id string) (*Scope, error) {
	return fetchDetail[Scope](ctx, s.d, ResourceScopes, id)
}

func (s *Scopes) Create(ctx context.Context, input ScopeInput) (*Scope, error) {
	return createOne(ctx, s.d, ResourceScopes, input, func(sc *Scope) string { return sc.ID })
}

func (s *Scopes) Update(ctx context.Context, id string, input ScopeInput) (*Scope, error) {
	return updateOne[Scope](ctx, s.d, ResourceScopes, id, input)
}

func (s *Scopes) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.d, ResourceScopes, id)
}

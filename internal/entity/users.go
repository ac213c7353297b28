package entity

import (
	"context"
)

// Users is the entity service for console accounts.
type Users struct {
	d Deps
}

// NewUsers creates the users service.
func NewUsers(d Deps) *Users {
	return &Users{d: d}
}

func (s *Users) List(ctx context.Context, filters UserFilters) (ListResult[User], error) {
	return fetchList[User](ctx, s.d, ResourceUsers, filters)
}

func (s *Users) Get(ctx context.Context, id string) (*User, error) {
	return fetchDetail[User](ctx, s.d, ResourceUsers, id)
}

func (s *Users) Create(ctx context.Context, input UserInput) (*User, error) {
	return createOne(ctx, s.d, ResourceUsers, input, func(u *User) string { return u.ID })
}

func (s *Users) Update(ctx context.Context, id string, input UserInput) (*User, error) {
	return updateOne[User](ctx, s.d, ResourceUsers, id, input)
}

// Deactivate disables a user account without deleting it.
func (s *Users) Deactivate(ctx context.Context, id string) (*User, error) {
	return actionOne[User](ctx, s.d, ResourceUsers, id, "deactivate")
}

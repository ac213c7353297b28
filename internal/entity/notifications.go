package entity

import (
	"context"

	"github.com/nebstarmalala/securion-console/internal/querycache"
)

// Notifications is the entity service for user notifications.
type Notifications struct {
	d Deps
}

// NewNotifications creates the notifications service.
func NewNotifications(d Deps) *Notifications {
	return &Notifications{d: d}
}

func (s *Notifications) List(ctx context.Context, filters NotificationFilters) (ListResult[Notification], error) {
	return fetchList[Notification](ctx, s.d, ResourceNotifications, filters)
}

// MarkRead marks a single notification read.
func (s *Notifications) MarkRead(ctx context.Context, id string) (*Notification, error) {
	return actionOne[Notification](ctx, s.d, ResourceNotifications, id, "read")
}

// MarkAllRead marks every notification read. The whole subtree goes
// stale since any cached page may contain unread entries.
func (s *Notifications) MarkAllRead(ctx context.Context) error {
	if err := s.d.API.Post(ctx, resourcePath(ResourceNotifications, "read-all"), nil, nil); err != nil {
		return err
	}
	s.d.Cache.Invalidate(querycache.All(ResourceNotifications))
	return nil
}

// Delete removes a notification.
func (s *Notifications) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.d, ResourceNotifications, id)
}

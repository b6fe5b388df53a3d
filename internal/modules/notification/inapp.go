package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"hostel/internal/domain"
)

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
}

// InApp stores the notification in the guest's inbox.
type InApp struct {
	users  UserLookup
	notifs NotificationStore
}

func NewInApp(users UserLookup, notifs NotificationStore) *InApp {
	return &InApp{users: users, notifs: notifs}
}

func (d *InApp) SendNotification(ctx context.Context, email string, kind domain.NotificationKind, payload Payload) error {
	user, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup recipient %q: %w", email, err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	title, message := Render(kind, payload)
	n := &domain.Notification{
		UserID:  user.ID,
		Kind:    kind,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(data),
	}
	if err := d.notifs.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}

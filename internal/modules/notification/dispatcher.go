package notification

import (
	"context"
	"errors"

	"hostel/internal/domain"
)

// Payload carries the template variables for a notification kind.
type Payload map[string]any

// Dispatcher delivers a notification to the user behind email. Delivery is
// best effort: callers log a returned error and carry on.
type Dispatcher interface {
	SendNotification(ctx context.Context, email string, kind domain.NotificationKind, payload Payload) error
}

// Multi fans a notification out to every dispatcher and joins their errors.
type Multi []Dispatcher

func (m Multi) SendNotification(ctx context.Context, email string, kind domain.NotificationKind, payload Payload) error {
	var errs []error
	for _, d := range m {
		if d == nil {
			continue
		}
		if err := d.SendNotification(ctx, email, kind, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) SendNotification(context.Context, string, domain.NotificationKind, Payload) error {
	return nil
}

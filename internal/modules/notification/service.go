package notification

import (
	"context"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/pkg/apperr"
)

type Service struct {
	notifs NotificationStore
}

func NewService(notifs NotificationStore) *Service {
	return &Service{notifs: notifs}
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, int, error) {
	list, err := s.notifs.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, 0, database.Classify("Failed to get notifications", err)
	}
	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	ok, err := s.notifs.MarkRead(ctx, id, userID)
	if err != nil {
		return database.Classify("Failed to mark as read", err)
	}
	if !ok {
		return apperr.NotFound("NOT_FOUND", "Notification not found")
	}
	return nil
}

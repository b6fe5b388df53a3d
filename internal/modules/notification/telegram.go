package notification

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"hostel/internal/domain"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram posts a staff alert to one chat for every notification.
type Telegram struct {
	sender messageSender
	chatID int64
}

// NewTelegram connects with token. The token is verified against the API.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{sender: b, chatID: chatID}, nil
}

func (t *Telegram) SendNotification(ctx context.Context, email string, kind domain.NotificationKind, payload Payload) error {
	title, message := Render(kind, payload)
	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   fmt.Sprintf("%s\n%s\nGuest: %s", title, message, email),
	})
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"quicknotes/internal/models"
)

// SignupNotifier сообщает операторам о новых пользователях. Ошибки не критичны.
type SignupNotifier interface {
	NotifySignup(ctx context.Context, user *models.User) error
}

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramService struct {
	bot    messageSender
	chatID int64
}

// NewTelegramService возвращает nil, если бот не настроен.
func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) NotifySignup(_ context.Context, user *models.User) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return nil
	}
	text := fmt.Sprintf("🆕 New signup: %s <%s> via %s", user.Name, user.Email, user.AuthProvider)
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	log.Printf("[tg][signup] sent user_id=%s", user.ID)
	return nil
}

package delivery

import (
	"context"
	"fmt"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
	"gopkg.in/telebot.v3"
)

// TelegramSender is the subset of the telebot API the deliverer needs,
// extracted as an interface so tests can stub it out.
type TelegramSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Telegram sends fired notifications to a single chat.
type Telegram struct {
	bot    TelegramSender
	chatID int64
}

func NewTelegram(bot TelegramSender, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,
	}
}

func (d *Telegram) Channel() domain.Channel {
	return domain.ChannelTelegram
}

func (d *Telegram) Deliver(ctx context.Context, occurrence *entity.Occurrence) error {
	recipient := &telebot.Chat{ID: d.chatID}

	text := fmt.Sprintf("%s\n%s", occurrence.DocumentTitle, occurrence.Message)
	_, err := d.bot.Send(recipient, text, &telebot.SendOptions{})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}

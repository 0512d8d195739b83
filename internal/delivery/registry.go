package delivery

import (
	"time"

	"github.com/noteminder/noteminder/internal/config"
	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/logger"
	"github.com/slack-go/slack"
	"gopkg.in/telebot.v3"
)

// Registry holds the deliverers built from configuration. The in-app feed is
// kept addressable so the HTTP layer can read it back.
type Registry struct {
	InApp      *InApp
	Deliverers []contract.Deliverer
}

// NewRegistry builds one deliverer per configured channel. In-app and system
// are always registered; Slack and Telegram only when their credentials are
// present. feedRepo may be nil, in which case the feed is memory-only.
func NewRegistry(cfg *config.Config, feedRepo contract.FeedRepo) (*Registry, error) {
	inApp := NewInApp(cfg.InAppFeedSize, feedRepo)

	reg := &Registry{
		InApp: inApp,
		Deliverers: []contract.Deliverer{
			inApp,
			NewSystem(cfg.SystemNotifyCommand),
		},
	}

	if cfg.SlackBotToken != "" && cfg.SlackChannelID != "" {
		client := slack.New(cfg.SlackBotToken)
		reg.Deliverers = append(reg.Deliverers, NewSlack(client, cfg.SlackChannelID))
		logger.Log.Info("Slack delivery channel registered")
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			return nil, err
		}
		reg.Deliverers = append(reg.Deliverers, NewTelegram(bot, cfg.TelegramChatID))
		logger.Log.Info("Telegram delivery channel registered")
	}

	return reg, nil
}

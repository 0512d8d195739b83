package delivery

import (
	"context"
	"fmt"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
	"github.com/slack-go/slack"
)

// SlackClient defines the interface for Slack operations
// This allows mocking in tests while keeping the real implementation simple
type SlackClient interface {
	// PostMessage sends a message to a Slack channel
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack posts fired notifications to a fixed Slack channel.
type Slack struct {
	client    SlackClient
	channelID string
}

func NewSlack(client SlackClient, channelID string) *Slack {
	return &Slack{
		client:    client,
		channelID: channelID,
	}
}

func (d *Slack) Channel() domain.Channel {
	return domain.ChannelSlack
}

func (d *Slack) Deliver(ctx context.Context, occurrence *entity.Occurrence) error {
	text := fmt.Sprintf("*%s*\n%s", occurrence.DocumentTitle, occurrence.Message)

	_, _, err := d.client.PostMessage(d.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to slack: %w", err)
	}

	return nil
}

package delivery

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

// System delivers notifications through the host's desktop notification
// command (notify-send by default). When the command is not installed the
// channel reports itself as unsupported and deliveries are skipped silently.
type System struct {
	command   string
	available bool
}

func NewSystem(command string) *System {
	_, err := exec.LookPath(command)
	return &System{
		command:   command,
		available: err == nil,
	}
}

func (d *System) Channel() domain.Channel {
	return domain.ChannelSystem
}

func (d *System) Deliver(ctx context.Context, occurrence *entity.Occurrence) error {
	if !d.available {
		return domain.ErrDeliveryUnsupported
	}

	cmd := exec.CommandContext(ctx, d.command, occurrence.DocumentTitle, occurrence.Message)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", d.command, err)
	}

	return nil
}

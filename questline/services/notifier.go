package services

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Notifier delivers engine-originated messages: expiry warnings, weekly
// summaries and congratulations, purchase broadcasts. Implementations must
// be safe to call from the scheduler goroutine.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, message string) error
	Broadcast(ctx context.Context, message string) error
}

type discordNotifier struct {
	client           bot.Client
	broadcastChannel snowflake.ID
}

func NewDiscordNotifier(client bot.Client, broadcastChannel snowflake.ID) Notifier {
	return &discordNotifier{
		client:           client,
		broadcastChannel: broadcastChannel,
	}
}

func (n *discordNotifier) NotifyUser(ctx context.Context, userID int64, message string) error {
	channel, err := n.client.Rest().CreateDMChannel(snowflake.ID(userID))
	if err != nil {
		return fmt.Errorf("failed to open DM channel for user %d: %w", userID, err)
	}
	if _, err := n.client.Rest().CreateMessage(channel.ID(), discord.MessageCreate{
		Content: message,
	}); err != nil {
		return fmt.Errorf("failed to send DM to user %d: %w", userID, err)
	}
	return nil
}

func (n *discordNotifier) Broadcast(ctx context.Context, message string) error {
	if n.broadcastChannel == 0 {
		return nil
	}
	if _, err := n.client.Rest().CreateMessage(n.broadcastChannel, discord.MessageCreate{
		Content: message,
	}); err != nil {
		return fmt.Errorf("failed to broadcast message: %w", err)
	}
	return nil
}

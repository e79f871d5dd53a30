package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	lru "github.com/hashicorp/golang-lru"
	"github.com/questline-bot/questline/questline"
)

const ensuredUserCacheSize = 4096

// MessageHandler listens for guild messages and feeds them into the
// activity counters and message-type missions. An LRU of recently seen
// user ids keeps the get-or-create off the hot path.
func MessageHandler(b *questline.Bot) bot.EventListener {
	ensured, _ := lru.New(ensuredUserCacheSize)

	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.Bot || e.GuildID == nil {
			return
		}
		userID := int64(e.Message.Author.ID)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, ok := ensured.Get(userID); !ok {
			if _, err := b.MissionService.EnsureUser(ctx, userID); err != nil {
				slog.Error("Failed to ensure user on message",
					slog.String("type", "db"),
					slog.Int64("user_id", userID),
					slog.Any("error", err))
				return
			}
			ensured.Add(userID, struct{}{})
		}

		if err := b.ActivityService.RecordMessage(ctx, userID); err != nil {
			slog.Error("Failed to record activity",
				slog.String("type", "db"),
				slog.Int64("user_id", userID),
				slog.Any("error", err))
		}

		if err := b.MissionService.TrackMessage(ctx, userID); err != nil {
			slog.Error("Failed to track message missions",
				slog.String("type", "db"),
				slog.Int64("user_id", userID),
				slog.Any("error", err))
		}
	})
}

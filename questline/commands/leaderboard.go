package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/questline-bot/questline/questline"
	"github.com/questline-bot/questline/questline/utils"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "This week's most active members",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "limit",
			Description: "How many entries to show (default 10)",
			Required:    false,
		},
	},
}

func LeaderboardHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		limit, ok := e.SlashCommandInteractionData().OptInt("limit")
		if !ok || limit <= 0 {
			limit = utils.LeaderboardPerPage
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		top, err := b.ActivityService.Top(ctx, limit, time.Now())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load the leaderboard. Please try again later.")
		}
		if len(top) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No activity recorded this week yet.")
		}

		var description strings.Builder
		for i, activity := range top {
			fmt.Fprintf(&description, "%d. <@%d>: %d messages\n", i+1, activity.UserID, activity.MessageCount)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "Weekly Activity Leaderboard",
				Description: description.String(),
				Color:       utils.EmbedColor,
			}},
		})
	}
}

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

var Badges = discord.SlashCommandCreate{
	Name:        "badges",
	Description: "Show your achievement history",
}

func BadgesHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		achievements, err := b.AchievementService.GetForUser(ctx, int64(e.User().ID))
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your achievements. Please try again later.")
		}
		if len(achievements) == 0 {
			return utils.EH.CreateInfoEmbed(e, "You have no badges yet.")
		}

		var description strings.Builder
		for _, a := range achievements {
			fmt.Fprintf(&description, "**%s**: %s (<t:%d:D>)\n", a.Name, a.Description, a.AwardedAt.Unix())
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "Your Badges",
				Description: description.String(),
				Color:       utils.EmbedColor,
			}},
		})
	}
}

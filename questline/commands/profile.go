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

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "Show your level, points and badges",
}

func ProfileHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := b.MissionService.EnsureUser(ctx, int64(e.User().ID))
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your profile. Please try again later.")
		}

		badges := user.BadgeSet()
		badgeLine := "none yet"
		if len(badges) > 0 {
			badgeLine = strings.Join(badges, ", ")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("%s's profile", e.User().Username),
				Fields: []discord.EmbedField{
					{Name: "Level", Value: fmt.Sprintf("%d", user.Level), Inline: utils.Ptr(true)},
					{Name: "Points", Value: fmt.Sprintf("%d", user.Points), Inline: utils.Ptr(true)},
					{Name: fmt.Sprintf("Badges (%d)", len(badges)), Value: badgeLine},
				},
				Color: utils.EmbedColor,
			}},
		})
	}
}

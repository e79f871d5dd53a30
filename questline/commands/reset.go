package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/questline-bot/questline/questline"
	"github.com/questline-bot/questline/questline/utils"
)

var Reset = discord.SlashCommandCreate{
	Name:        "reset",
	Description: "Delete all missions of a user (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "User whose missions are removed",
			Required:    true,
		},
	},
}

func ResetHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !requireAdmin(b, e) {
			return nil
		}

		target := e.SlashCommandInteractionData().Snowflake("user")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.MissionService.Reset(ctx, int64(target)); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to reset missions. Please try again later.")
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Missions of <@%d> were reset.", target))
	}
}

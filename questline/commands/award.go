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

var Award = discord.SlashCommandCreate{
	Name:        "award",
	Description: "Award an achievement to a user (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "args",
			Description: "user_id|name|description",
			Required:    true,
		},
	},
}

func AwardHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !requireAdmin(b, e) {
			return nil
		}

		args, err := ParseAwardArgs(e.SlashCommandInteractionData().String("args"))
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, err.Error())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		achievement, err := b.AchievementService.Award(ctx, args.UserID, args.Name, args.Description)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to award achievement. Please try again later.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
			"Achievement '%s' awarded to <@%d>", achievement.Name, achievement.UserID))
	}
}

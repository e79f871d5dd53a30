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

var Complete = discord.SlashCommandCreate{
	Name:        "complete",
	Description: "Complete one of your missions and collect the reward",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "mission",
			Description: "Mission id",
			Required:    true,
		},
	},
}

func CompleteHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		missionID := int64(e.SlashCommandInteractionData().Int("mission"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		mission, err := b.MissionService.Complete(ctx, int64(e.User().ID), missionID)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to complete mission. Please try again later.")
		}
		if mission == nil {
			return utils.EH.CreateErrorEmbed(e, "That mission does not exist or is not yours.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
			"Mission complete! '%s' paid out %d points.", mission.Description, mission.Reward()))
	}
}

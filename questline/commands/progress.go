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

var Progress = discord.SlashCommandCreate{
	Name:        "progress",
	Description: "Report progress on one of your missions",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "mission",
			Description: "Mission id",
			Required:    true,
		},
	},
}

func ProgressHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		missionID := int64(e.SlashCommandInteractionData().Int("mission"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		mission, err := b.MissionService.UpdateProgress(ctx, int64(e.User().ID), missionID, 1)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to update progress. Please try again later.")
		}
		if mission == nil {
			return utils.EH.CreateErrorEmbed(e, "That mission does not exist or is not yours.")
		}

		if mission.Completed() {
			return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
				"Mission complete! '%s' paid out %d points.", mission.Description, mission.Reward()))
		}
		return utils.EH.CreateInfoEmbed(e, fmt.Sprintf(
			"Progress on '%s': %d/%d", mission.Description, mission.Progress, mission.Goal))
	}
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/questline-bot/questline/questline"
	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/utils"
)

var CreateMission = discord.SlashCommandCreate{
	Name:        "createmission",
	Description: "Create a mission for a user (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "args",
			Description: "user_id|description|points|days",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "type",
			Description: "Mission type",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Generic", Value: models.MissionTypeGeneric},
				{Name: "Hard (double reward)", Value: models.MissionTypeHard},
				{Name: "Message", Value: models.MissionTypeMessage},
			},
		},
		discord.ApplicationCommandOptionInt{
			Name:        "goal",
			Description: "Progress target (default 1)",
			Required:    false,
		},
	},
}

func CreateMissionHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !requireAdmin(b, e) {
			return nil
		}

		args, err := ParseCreateMissionArgs(e.SlashCommandInteractionData().String("args"))
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, err.Error())
		}

		missionType, _ := e.SlashCommandInteractionData().OptString("type")
		goal, ok := e.SlashCommandInteractionData().OptInt("goal")
		if !ok {
			goal = 1
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		mission, err := b.MissionService.Assign(ctx, args.UserID, args.Description, args.Points, args.Days, missionType, goal)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to create mission. Please try again later.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
			"Mission #%d created for <@%d>: %s (reward %d points)",
			mission.ID, mission.UserID, mission.Description, mission.Reward()))
	}
}

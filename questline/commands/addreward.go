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

var AddReward = discord.SlashCommandCreate{
	Name:        "addreward",
	Description: "Add a reward to the store catalog (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "args",
			Description: "name|description|cost",
			Required:    true,
		},
	},
}

func AddRewardHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !requireAdmin(b, e) {
			return nil
		}

		args, err := ParseAddRewardArgs(e.SlashCommandInteractionData().String("args"))
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, err.Error())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		reward, err := b.StoreService.AddReward(ctx, args.Name, args.Description, args.Cost)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to add reward. Please try again later.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
			"Reward #%d added: %s (%d points)", reward.ID, reward.Name, reward.Cost))
	}
}

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

var Shop = discord.SlashCommandCreate{
	Name:        "shop",
	Description: "Browse the reward store",
}

func ShopHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rewards, err := b.StoreService.ListRewards(ctx)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to fetch the store catalog. Please try again later.")
		}
		if len(rewards) == 0 {
			return utils.EH.CreateInfoEmbed(e, "The store is empty right now.")
		}

		fields := make([]discord.EmbedField, 0, len(rewards))
		for _, reward := range rewards {
			fields = append(fields, discord.EmbedField{
				Name:   fmt.Sprintf("#%d %s", reward.ID, reward.Name),
				Value:  fmt.Sprintf("%s\n**Cost**: %d points", reward.Description, reward.Cost),
				Inline: utils.Ptr(true),
			})
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "Reward Store",
				Description: "Redeem your points with /buy",
				Fields:      fields,
				Color:       utils.EmbedColor,
			}},
		})
	}
}

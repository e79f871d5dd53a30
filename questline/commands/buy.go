package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/questline-bot/questline/questline"
	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/services"
	"github.com/questline-bot/questline/questline/utils"
	"github.com/sahilm/fuzzy"
)

var Buy = discord.SlashCommandCreate{
	Name:        "buy",
	Description: "Redeem points for a reward",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:         "reward",
			Description:  "Reward id (type a name to search)",
			Required:     true,
			Autocomplete: true,
		},
	},
}

func BuyHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		rewardID := int64(e.SlashCommandInteractionData().Int("reward"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		reward, err := b.StoreService.Redeem(ctx, int64(e.User().ID), rewardID)
		switch {
		case errors.Is(err, services.ErrRewardNotFound), errors.Is(err, services.ErrUserNotFound):
			return utils.EH.CreateErrorEmbed(e, "That reward does not exist.")
		case errors.Is(err, services.ErrInsufficientPoints):
			return utils.EH.CreateErrorEmbed(e, "You do not have enough points for that reward.")
		case err != nil:
			return utils.EH.CreateErrorEmbed(e, "Failed to redeem the reward. Please try again later.")
		}

		if b.Notifier != nil {
			_ = b.Notifier.Broadcast(ctx, fmt.Sprintf("<@%d> redeemed '%s'!", e.User().ID, reward.Name))
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
			"You redeemed '%s' for %d points. Enjoy!", reward.Name, reward.Cost))
	}
}

// rewardSource adapts the catalog to fuzzy.Source for name matching.
type rewardSource []*models.Reward

func (s rewardSource) Len() int            { return len(s) }
func (s rewardSource) String(i int) string { return s[i].Name }

func BuyAutocompleteHandler(b *questline.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		query := ""
		if focused := e.Data.Focused(); focused.Value != nil {
			var s string
			if err := json.Unmarshal(focused.Value, &s); err == nil {
				query = strings.TrimSpace(s)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		rewards, err := b.StoreService.ListRewards(ctx)
		if err != nil {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		selected := rewards
		if query != "" {
			matches := fuzzy.FindFrom(query, rewardSource(rewards))
			selected = make([]*models.Reward, 0, len(matches))
			for _, m := range matches {
				selected = append(selected, rewards[m.Index])
			}
		}

		choices := make([]discord.AutocompleteChoice, 0, min(len(selected), 25))
		for _, reward := range selected {
			if len(choices) == 25 {
				break
			}
			choices = append(choices, discord.AutocompleteChoiceInt{
				Name:  fmt.Sprintf("%s (%d points)", reward.Name, reward.Cost),
				Value: int(reward.ID),
			})
		}
		return e.AutocompleteResult(choices)
	}
}

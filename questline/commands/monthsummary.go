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

var MonthSummary = discord.SlashCommandCreate{
	Name:        "monthsummary",
	Description: "Purchase counts per reward for a month (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "month",
			Description: "YYYY-MM, defaults to the previous month",
			Required:    false,
		},
	},
}

func MonthSummaryHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !requireAdmin(b, e) {
			return nil
		}

		monthArg, _ := e.SlashCommandInteractionData().OptString("month")
		month, err := ParseMonthArg(monthArg, time.Now())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, err.Error())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		counts, err := b.StoreService.MonthlySummary(ctx, month)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to build summary. Please try again later.")
		}
		if len(counts) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No purchases recorded.")
		}

		var lines []string
		for _, c := range counts {
			name := fmt.Sprintf("reward #%d (deleted)", c.RewardID)
			if c.Reward != nil {
				name = c.Reward.Name
			}
			lines = append(lines, fmt.Sprintf("%s: %d", name, c.Count))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("Purchase summary %s", utils.FormatMonth(month)),
				Description: strings.Join(lines, "\n"),
				Color:       utils.InfoColor,
			}},
		})
	}
}

package commands

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/questline-bot/questline/questline"
	"github.com/questline-bot/questline/questline/utils"
)

var Missions = discord.SlashCommandCreate{
	Name:        "missions",
	Description: "Show your active missions",
}

func MissionsHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		userID := int64(e.User().ID)
		if _, err := b.MissionService.EnsureUser(ctx, userID); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your missions. Please try again later.")
		}

		missions, err := b.MissionService.ActiveMissions(ctx, userID)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your missions. Please try again later.")
		}
		if len(missions) == 0 {
			return utils.EH.CreateInfoEmbed(e, "You have no active missions.")
		}

		totalPages := int(math.Ceil(float64(len(missions)) / float64(utils.MissionsPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * utils.MissionsPerPage
				endIdx := min(startIdx+utils.MissionsPerPage, len(missions))

				var description strings.Builder
				for _, m := range missions[startIdx:endIdx] {
					fmt.Fprintf(&description, "**#%d** %s [%d/%d] (+%d pts)",
						m.ID, m.Description, m.Progress, m.Goal, m.Reward())
					if m.ExpiresAt != nil {
						fmt.Fprintf(&description, " expires <t:%d:R>", m.ExpiresAt.Unix())
					}
					description.WriteString("\n")
				}

				embed.
					SetTitle("Your Missions").
					SetDescription(description.String()).
					SetColor(utils.EmbedColor).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, totalPages), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

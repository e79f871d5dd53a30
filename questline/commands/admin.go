package commands

import (
	"log/slog"

	"github.com/disgoorg/disgo/handler"
	"github.com/questline-bot/questline/questline"
	"github.com/questline-bot/questline/questline/utils"
)

// requireAdmin rejects callers outside the configured admin list. It
// answers the interaction itself, so handlers just return on false.
func requireAdmin(b *questline.Bot, e *handler.CommandEvent) bool {
	if b.Cfg.Bot.IsAdmin(e.User().ID) {
		return true
	}
	slog.Warn("Unauthorized admin command",
		slog.String("type", "cmd"),
		slog.String("user_id", e.User().ID.String()))
	_ = utils.EH.CreateErrorEmbed(e, "You are not authorized to use this command.")
	return false
}

package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Version,
	Profile,
	Missions,
	Badges,
	Progress,
	Complete,
	Shop,
	Buy,
	Leaderboard,
	CreateMission,
	Award,
	AddReward,
	MonthSummary,
	Reset,
}

package commands

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/questline-bot/questline/questline/utils"
)

// Admin commands keep the pipe-delimited argument format of the original
// chat interface. Each parser returns a usage error ready to show the
// caller when the input is malformed.

const (
	UsageCreateMission = "Usage: /createmission user_id|description|points|days"
	UsageAward         = "Usage: /award user_id|name|description"
	UsageAddReward     = "Usage: /addreward name|description|cost"
	UsageMonthSummary  = "Usage: /monthsummary [YYYY-MM]"
)

type CreateMissionArgs struct {
	UserID      int64
	Description string
	Points      int64
	Days        int
}

func ParseCreateMissionArgs(s string) (*CreateMissionArgs, error) {
	parts := splitArgs(s, 4)
	if parts == nil {
		return nil, errors.New(UsageCreateMission)
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, errors.New(UsageCreateMission)
	}
	points, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, errors.New(UsageCreateMission)
	}
	days, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, errors.New(UsageCreateMission)
	}
	return &CreateMissionArgs{
		UserID:      userID,
		Description: parts[1],
		Points:      points,
		Days:        days,
	}, nil
}

type AwardArgs struct {
	UserID      int64
	Name        string
	Description string
}

func ParseAwardArgs(s string) (*AwardArgs, error) {
	parts := splitArgs(s, 3)
	if parts == nil {
		return nil, errors.New(UsageAward)
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, errors.New(UsageAward)
	}
	return &AwardArgs{
		UserID:      userID,
		Name:        parts[1],
		Description: parts[2],
	}, nil
}

type AddRewardArgs struct {
	Name        string
	Description string
	Cost        int64
}

func ParseAddRewardArgs(s string) (*AddRewardArgs, error) {
	parts := splitArgs(s, 3)
	if parts == nil {
		return nil, errors.New(UsageAddReward)
	}
	cost, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, errors.New(UsageAddReward)
	}
	return &AddRewardArgs{
		Name:        parts[0],
		Description: parts[1],
		Cost:        cost,
	}, nil
}

// ParseMonthArg parses an optional YYYY-MM tag, defaulting to the previous
// calendar month when empty.
func ParseMonthArg(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return utils.PreviousMonth(now), nil
	}
	month, err := utils.ParseMonth(s)
	if err != nil {
		return time.Time{}, errors.New(UsageMonthSummary)
	}
	return month, nil
}

// splitArgs splits a pipe-delimited argument string into exactly n
// trimmed, non-empty fields. Nil when the shape does not match.
func splitArgs(s string, n int) []string {
	parts := strings.Split(s, "|")
	if len(parts) != n {
		return nil
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return nil
		}
	}
	return parts
}

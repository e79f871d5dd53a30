package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	MissionTypeGeneric = "generic"
	MissionTypeHard    = "hard"
	MissionTypeDaily   = "daily"
	MissionTypeWeekly  = "weekly"
	MissionTypeMessage = "message"
)

// Mission is a goal-tracked task that pays out points on completion.
// Missions are deleted on completion or expiry, not archived.
type Mission struct {
	bun.BaseModel `bun:"table:missions,alias:m"`

	ID          int64  `bun:"id,pk,autoincrement"`
	UserID      int64  `bun:"user_id,notnull"`
	Description string `bun:"description,notnull"`
	Points      int64  `bun:"points,notnull"`
	Type        string `bun:"type,notnull,default:'generic'"`
	Goal        int    `bun:"goal,notnull,default:1"`
	Progress    int    `bun:"progress,notnull,default:0"`

	ExpiresAt   *time.Time `bun:"expires_at"`
	WarningSent bool       `bun:"warning_sent,notnull,default:false"`
	CreatedAt   time.Time  `bun:"created_at,notnull"`
}

// Reward computes the point payout for this mission. It is used both when
// quoting a mission to the user and when granting the payout, so the two
// always agree.
func (m *Mission) Reward() int64 {
	goal := int64(m.Goal)
	if goal < 1 {
		goal = 1
	}
	reward := m.Points * goal
	if m.Type == MissionTypeHard {
		reward *= 2
	}
	return reward
}

// Completed reports whether accumulated progress has reached the goal.
func (m *Mission) Completed() bool {
	return m.Progress >= m.Goal
}

// Expired reports whether the mission's expiry is set and strictly in the
// past relative to now.
func (m *Mission) Expired(now time.Time) bool {
	return m.ExpiresAt != nil && m.ExpiresAt.Before(now)
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// WeeklyActivity tallies tracked messages per user per ISO week. One row
// per (user, week start).
type WeeklyActivity struct {
	bun.BaseModel `bun:"table:weekly_activities,alias:wa"`

	ID           int64     `bun:"id,pk,autoincrement"`
	UserID       int64     `bun:"user_id,notnull"`
	WeekStart    time.Time `bun:"week_start,notnull"`
	MessageCount int       `bun:"message_count,notnull,default:0"`
}

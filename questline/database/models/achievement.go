package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Achievement is one entry in a user's award history. The badge set on the
// user is deduplicated; this history is append-only and keeps duplicates.
type Achievement struct {
	bun.BaseModel `bun:"table:achievements,alias:a"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      int64     `bun:"user_id,notnull"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	AwardedAt   time.Time `bun:"awarded_at,notnull"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Reward is a catalog entry redeemable for points. Immutable once created.
type Reward struct {
	bun.BaseModel `bun:"table:rewards,alias:r"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	Cost        int64     `bun:"cost,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

// Purchase is an append-only record of a completed redemption.
type Purchase struct {
	bun.BaseModel `bun:"table:purchases,alias:p"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull"`
	RewardID  int64     `bun:"reward_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`

	Reward *Reward `bun:"rel:has-one,join:reward_id=id"`
}

// PurchaseCount aggregates purchases of one reward over a period. Reward is
// nil when the catalog entry has been deleted since the purchase; RewardID
// stays usable as a fallback.
type PurchaseCount struct {
	RewardID int64
	Reward   *Reward
	Count    int
}

package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// PointsPerLevel is the amount of points that separates two levels.
const PointsPerLevel = 100

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	// ID is the numeric id handed to us by the transport layer. It is
	// never generated locally.
	ID     int64 `bun:"id,pk"`
	Points int64 `bun:"points,notnull,default:0"`
	Level  int   `bun:"level,notnull,default:1"`

	// Badges is the deduplicated set of achievement names, stored as a
	// comma separated string. Achievements keep the full award history.
	Badges string `bun:"badges,notnull,default:''"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// AddPoints credits points and recomputes the level. Level only ever
// follows credits; debits (see StoreService.Redeem) leave it untouched, so
// it tracks the historical maximum a user has reached.
func (u *User) AddPoints(points int64) {
	u.Points += points
	u.Level = LevelForPoints(u.Points)
}

// LevelForPoints derives the level for a point total.
func LevelForPoints(points int64) int {
	return int(points/PointsPerLevel) + 1
}

// BadgeSet returns the badge names as a slice, empty names filtered out.
func (u *User) BadgeSet() []string {
	if u.Badges == "" {
		return nil
	}
	parts := strings.Split(u.Badges, ",")
	badges := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			badges = append(badges, p)
		}
	}
	return badges
}

// AddBadge unions name into the badge set. Returns false if the badge was
// already present.
func (u *User) AddBadge(name string) bool {
	for _, b := range u.BadgeSet() {
		if b == name {
			return false
		}
	}
	if u.Badges == "" {
		u.Badges = name
	} else {
		u.Badges += "," + name
	}
	return true
}

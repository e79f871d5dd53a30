package models

import (
	"testing"
	"time"
)

func TestMissionReward(t *testing.T) {
	tests := []struct {
		name    string
		mission Mission
		want    int64
	}{
		{"single goal generic", Mission{Points: 10, Goal: 1, Type: MissionTypeGeneric}, 10},
		{"multi goal generic", Mission{Points: 10, Goal: 2, Type: MissionTypeGeneric}, 20},
		{"hard doubles", Mission{Points: 10, Goal: 2, Type: MissionTypeHard}, 40},
		{"zero goal clamps to one", Mission{Points: 7, Goal: 0, Type: MissionTypeGeneric}, 7},
		{"daily is not doubled", Mission{Points: 5, Goal: 3, Type: MissionTypeDaily}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mission.Reward(); got != tt.want {
				t.Errorf("Reward() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMissionExpired(t *testing.T) {
	now := time.Date(2023, time.May, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if (&Mission{}).Expired(now) {
		t.Error("mission without expiry reported expired")
	}
	if !(&Mission{ExpiresAt: &past}).Expired(now) {
		t.Error("past expiry not reported expired")
	}
	if (&Mission{ExpiresAt: &future}).Expired(now) {
		t.Error("future expiry reported expired")
	}
	if (&Mission{ExpiresAt: &now}).Expired(now) {
		t.Error("expiry exactly now must not count as expired")
	}
}

func TestUserLevel(t *testing.T) {
	u := &User{Points: 95, Level: 1}
	u.AddPoints(20)
	if u.Points != 115 {
		t.Errorf("Points = %d, want 115", u.Points)
	}
	if u.Level != 2 {
		t.Errorf("Level = %d, want 2", u.Level)
	}

	if got := LevelForPoints(0); got != 1 {
		t.Errorf("LevelForPoints(0) = %d, want 1", got)
	}
	if got := LevelForPoints(100); got != 2 {
		t.Errorf("LevelForPoints(100) = %d, want 2", got)
	}
}

func TestUserBadges(t *testing.T) {
	u := &User{}
	if !u.AddBadge("Hero") {
		t.Error("first AddBadge returned false")
	}
	if u.AddBadge("Hero") {
		t.Error("duplicate AddBadge returned true")
	}
	u.AddBadge("Veteran")

	badges := u.BadgeSet()
	if len(badges) != 2 || badges[0] != "Hero" || badges[1] != "Veteran" {
		t.Errorf("BadgeSet = %v", badges)
	}
}

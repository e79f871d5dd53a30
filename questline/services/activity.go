package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/questline-bot/questline/questline/utils"
)

// ActivityService keeps the per-user per-week message counters and runs the
// weekly activity competition.
type ActivityService struct {
	activities repositories.ActivityRepository
	users      repositories.UserRepository

	Now func() time.Time
}

func NewActivityService(activities repositories.ActivityRepository, users repositories.UserRepository) *ActivityService {
	return &ActivityService{
		activities: activities,
		users:      users,
		Now:        time.Now,
	}
}

// RecordMessage bumps the user's counter for the current week, creating
// the row on first message of the week.
func (s *ActivityService) RecordMessage(ctx context.Context, userID int64) error {
	week := utils.WeekStart(s.Now())
	if err := s.activities.IncrementMessageCount(ctx, userID, week); err != nil {
		return fmt.Errorf("failed to record message for user %d: %w", userID, err)
	}
	return nil
}

// Top returns up to limit rows for the week, most active first. Ties break
// by user id ascending.
func (s *ActivityService) Top(ctx context.Context, limit int, week time.Time) ([]*models.WeeklyActivity, error) {
	return s.activities.GetTop(ctx, utils.WeekStart(week), limit)
}

// RewardTop credits points to each of the week's topN most active users,
// recomputing their level, and returns all of them in rank order.
func (s *ActivityService) RewardTop(ctx context.Context, week time.Time, topN int, points int64) ([]*models.User, error) {
	top, err := s.activities.GetTop(ctx, utils.WeekStart(week), topN)
	if err != nil {
		return nil, err
	}

	rewarded := make([]*models.User, 0, len(top))
	for _, activity := range top {
		user, err := s.users.GetByID(ctx, activity.UserID)
		if err != nil {
			return rewarded, err
		}
		if user == nil {
			continue
		}
		user.AddPoints(points)
		if err := s.users.Update(ctx, user); err != nil {
			return rewarded, err
		}
		rewarded = append(rewarded, user)
	}

	slog.Info("Weekly activity bonus distributed",
		slog.String("type", "sys"),
		slog.Time("week_start", utils.WeekStart(week)),
		slog.Int("rewarded", len(rewarded)),
		slog.Int64("points_each", points))
	return rewarded, nil
}

// WeeklySummary renders the broadcast text for a finished week.
func (s *ActivityService) WeeklySummary(ctx context.Context, week time.Time, limit int) (string, error) {
	top, err := s.Top(ctx, limit, week)
	if err != nil {
		return "", err
	}
	if len(top) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly activity summary (%s):\n", utils.WeekStart(week).Format("2006-01-02"))
	for i, activity := range top {
		fmt.Fprintf(&b, "%d. <@%d>: %d messages\n", i+1, activity.UserID, activity.MessageCount)
	}
	return b.String(), nil
}

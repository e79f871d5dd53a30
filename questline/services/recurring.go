package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/questline-bot/questline/questline/utils"
	"golang.org/x/sync/errgroup"
)

// assignConcurrency bounds the fan-out when assigning recurring missions
// across the whole user base.
const assignConcurrency = 8

// RecurringService assigns daily and weekly missions to every known user,
// at most once per user per window. The creation-timestamp check is the
// only duplicate guard; two concurrent calls inside the same window for the
// same user can both pass it. The scheduler is the sole caller, so in
// practice the calls are serialized.
type RecurringService struct {
	missions repositories.MissionRepository
	users    repositories.UserRepository

	Now func() time.Time
}

func NewRecurringService(missions repositories.MissionRepository, users repositories.UserRepository) *RecurringService {
	return &RecurringService{
		missions: missions,
		users:    users,
		Now:      time.Now,
	}
}

// AssignDaily gives every user a daily mission expiring at the end of the
// current day, skipping users who already got one inside the day window.
// Returns the number of missions created.
func (s *RecurringService) AssignDaily(ctx context.Context, description string, points int64, goal int) (int, error) {
	now := s.Now().UTC()
	return s.assign(ctx, models.MissionTypeDaily, description, points, goal, utils.DayStart(now), utils.DayEnd(now))
}

// AssignWeekly is AssignDaily over the Monday-to-Monday week window.
func (s *RecurringService) AssignWeekly(ctx context.Context, description string, points int64, goal int) (int, error) {
	now := s.Now().UTC()
	return s.assign(ctx, models.MissionTypeWeekly, description, points, goal, utils.WeekStart(now), utils.WeekEnd(now))
}

func (s *RecurringService) assign(ctx context.Context, missionType, description string, points int64, goal int, windowStart, windowEnd time.Time) (int, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if goal < 1 {
		goal = 1
	}

	var assigned atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(assignConcurrency)

	for _, user := range users {
		userID := user.ID
		g.Go(func() error {
			count, err := s.missions.CountByTypeSince(gctx, userID, missionType, windowStart)
			if err != nil {
				// One user's failure must not starve the rest of the run.
				slog.Error("Recurring assignment check failed",
					slog.String("type", "db"),
					slog.Int64("user_id", userID),
					slog.String("mission_type", missionType),
					slog.Any("error", err))
				return nil
			}
			if count > 0 {
				return nil
			}

			expires := windowEnd
			mission := &models.Mission{
				UserID:      userID,
				Description: description,
				Points:      points,
				Type:        missionType,
				Goal:        goal,
				ExpiresAt:   &expires,
				CreatedAt:   s.Now().UTC(),
			}
			if err := s.missions.Create(gctx, mission); err != nil {
				slog.Error("Recurring assignment failed",
					slog.String("type", "db"),
					slog.Int64("user_id", userID),
					slog.String("mission_type", missionType),
					slog.Any("error", err))
				return nil
			}
			assigned.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(assigned.Load()), err
	}

	slog.Info("Recurring missions assigned",
		slog.String("type", "sys"),
		slog.String("mission_type", missionType),
		slog.Int64("assigned", assigned.Load()),
		slog.Int("users", len(users)))
	return int(assigned.Load()), nil
}

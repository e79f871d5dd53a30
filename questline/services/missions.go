package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/uptrace/bun"
)

// Starter mission handed out the first time a user interacts with the bot.
const (
	starterMissionDescription = "Welcome! Send your first messages in the community"
	starterMissionPoints      = 2
	starterMissionGoal        = 5
)

// MissionService implements the mission bookkeeping:  assignment, progress
// accumulation, completion payouts and expiry. Completion is
// reward-then-delete; missions are never archived.
type MissionService struct {
	db       *bun.DB
	missions repositories.MissionRepository
	users    repositories.UserRepository

	// Now is the clock used for expiry arithmetic, replaceable in tests.
	Now func() time.Time
}

func NewMissionService(db *bun.DB, missions repositories.MissionRepository, users repositories.UserRepository) *MissionService {
	return &MissionService{
		db:       db,
		missions: missions,
		users:    users,
		Now:      time.Now,
	}
}

// EnsureUser fetches or creates the user. On first contact the user also
// receives the starter mission.
func (s *MissionService) EnsureUser(ctx context.Context, userID int64) (*models.User, error) {
	user, created, err := s.users.EnsureUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user %d: %w", userID, err)
	}
	if created {
		if err := s.missions.Create(ctx, &models.Mission{
			UserID:      userID,
			Description: starterMissionDescription,
			Points:      starterMissionPoints,
			Type:        models.MissionTypeMessage,
			Goal:        starterMissionGoal,
			CreatedAt:   s.Now().UTC(),
		}); err != nil {
			return nil, fmt.Errorf("failed to assign starter mission: %w", err)
		}
		slog.Info("New user registered",
			slog.String("type", "sys"),
			slog.Int64("user_id", userID))
	}
	return user, nil
}

// Assign creates a mission for a user. daysValid <= 0 means the mission
// never expires. Several identical missions may coexist.
func (s *MissionService) Assign(ctx context.Context, userID int64, description string, points int64, daysValid int, missionType string, goal int) (*models.Mission, error) {
	if missionType == "" {
		missionType = models.MissionTypeGeneric
	}
	if goal < 1 {
		goal = 1
	}
	if _, err := s.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}

	mission := &models.Mission{
		UserID:      userID,
		Description: description,
		Points:      points,
		Type:        missionType,
		Goal:        goal,
		CreatedAt:   s.Now().UTC(),
	}
	if daysValid > 0 {
		expires := s.Now().UTC().AddDate(0, 0, daysValid)
		mission.ExpiresAt = &expires
	}
	if err := s.missions.Create(ctx, mission); err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}
	return mission, nil
}

// UpdateProgress increments a mission's progress. It returns nil (and no
// error) when the mission does not exist or belongs to a different user.
// When progress reaches the goal the reward is credited, the mission is
// deleted and the returned snapshot shows the completed state.
func (s *MissionService) UpdateProgress(ctx context.Context, userID, missionID int64, amount int) (*models.Mission, error) {
	mission, err := s.missions.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil || mission.UserID != userID {
		return nil, nil
	}

	mission.Progress += amount
	if !mission.Completed() {
		if err := s.missions.Update(ctx, mission); err != nil {
			return nil, fmt.Errorf("failed to update mission progress: %w", err)
		}
		return mission, nil
	}

	if err := s.grantAndDelete(ctx, userID, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

// Complete grants the full reward regardless of progress, deletes the
// mission and returns the completed snapshot. Nil when mission or user is
// missing or ownership does not match.
func (s *MissionService) Complete(ctx context.Context, userID, missionID int64) (*models.Mission, error) {
	mission, err := s.missions.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil || mission.UserID != userID {
		return nil, nil
	}

	mission.Progress = mission.Goal
	if err := s.grantAndDelete(ctx, userID, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

// grantAndDelete credits the mission reward and removes the mission in one
// transaction.
func (s *MissionService) grantAndDelete(ctx context.Context, userID int64, mission *models.Mission) error {
	reward := mission.Reward()
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		users := repositories.NewUserRepository(tx)
		missions := repositories.NewMissionRepository(tx)

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d not found for mission payout", userID)
		}

		user.AddPoints(reward)
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		return missions.Delete(ctx, mission.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to complete mission %d: %w", mission.ID, err)
	}

	slog.Info("Mission completed",
		slog.String("type", "sys"),
		slog.Int64("user_id", userID),
		slog.Int64("mission_id", mission.ID),
		slog.Int64("reward", reward))
	return nil
}

// ActiveMissions returns the user's missions whose expiry is unset or
// still in the future. Expiry filtering happens here, not in the store.
func (s *MissionService) ActiveMissions(ctx context.Context, userID int64) ([]*models.Mission, error) {
	missions, err := s.missions.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now().UTC()
	active := make([]*models.Mission, 0, len(missions))
	for _, m := range missions {
		if !m.Expired(now) {
			active = append(active, m)
		}
	}
	return active, nil
}

// TrackMessage bumps progress on every active message-type mission the
// user holds. Completed missions pay out through the normal path.
func (s *MissionService) TrackMessage(ctx context.Context, userID int64) error {
	missions, err := s.ActiveMissions(ctx, userID)
	if err != nil {
		return err
	}
	for _, m := range missions {
		if m.Type != models.MissionTypeMessage {
			continue
		}
		if _, err := s.UpdateProgress(ctx, userID, m.ID, 1); err != nil {
			return err
		}
	}
	return nil
}

// RemoveExpired deletes every mission whose expiry is strictly in the
// past, for all users. No reward is granted. Safe to run repeatedly.
func (s *MissionService) RemoveExpired(ctx context.Context) (int, error) {
	removed, err := s.missions.DeleteExpired(ctx, s.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to remove expired missions: %w", err)
	}
	return removed, nil
}

// NearExpiry returns missions expiring within the window that have not
// expired yet and have not been flagged with a warning.
func (s *MissionService) NearExpiry(ctx context.Context, window time.Duration) ([]*models.Mission, error) {
	now := s.Now().UTC()
	return s.missions.GetExpiringBefore(ctx, now, now.Add(window))
}

// MarkWarningSent flips the one-shot warning flag. No-op when the mission
// is gone.
func (s *MissionService) MarkWarningSent(ctx context.Context, missionID int64) error {
	return s.missions.MarkWarningSent(ctx, missionID)
}

// Reset deletes all missions of a user. Admin recovery action.
func (s *MissionService) Reset(ctx context.Context, userID int64) error {
	return s.missions.DeleteByUser(ctx, userID)
}

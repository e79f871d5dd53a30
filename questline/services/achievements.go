package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/database/repositories"
)

// AchievementService grants named achievements. The award history is
// append-only and keeps duplicates; the badge set on the user is
// deduplicated on write.
type AchievementService struct {
	achievements repositories.AchievementRepository
	users        repositories.UserRepository

	Now func() time.Time
}

func NewAchievementService(achievements repositories.AchievementRepository, users repositories.UserRepository) *AchievementService {
	return &AchievementService{
		achievements: achievements,
		users:        users,
		Now:          time.Now,
	}
}

// Award records an achievement for the user and unions the name into
// their badge set.
func (s *AchievementService) Award(ctx context.Context, userID int64, name, description string) (*models.Achievement, error) {
	user, _, err := s.users.EnsureUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user %d: %w", userID, err)
	}

	achievement := &models.Achievement{
		UserID:      userID,
		Name:        name,
		Description: description,
		AwardedAt:   s.Now().UTC(),
	}
	if err := s.achievements.Create(ctx, achievement); err != nil {
		return nil, fmt.Errorf("failed to record achievement: %w", err)
	}

	if user.AddBadge(name) {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update badge set: %w", err)
		}
	}

	slog.Info("Achievement awarded",
		slog.String("type", "sys"),
		slog.Int64("user_id", userID),
		slog.String("name", name))
	return achievement, nil
}

// GetForUser returns the full award history for a user.
func (s *AchievementService) GetForUser(ctx context.Context, userID int64) ([]*models.Achievement, error) {
	return s.achievements.GetByUser(ctx, userID)
}

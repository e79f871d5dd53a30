package repositories

import (
	"context"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/uptrace/bun"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *models.Achievement) error
	GetByUser(ctx context.Context, userID int64) ([]*models.Achievement, error)
}

type achievementRepository struct {
	db bun.IDB
}

func NewAchievementRepository(db bun.IDB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	if achievement.AwardedAt.IsZero() {
		achievement.AwardedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().Model(achievement).Exec(ctx)
	return err
}

func (r *achievementRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := r.db.NewSelect().
		Model(&achievements).
		Where("user_id = ?", userID).
		Order("awarded_at ASC", "id ASC").
		Scan(ctx)
	return achievements, err
}

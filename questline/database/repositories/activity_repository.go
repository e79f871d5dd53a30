package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/uptrace/bun"
)

type ActivityRepository interface {
	// IncrementMessageCount upserts the (user, week) row and bumps its
	// counter by one.
	IncrementMessageCount(ctx context.Context, userID int64, weekStart time.Time) error
	GetTop(ctx context.Context, weekStart time.Time, limit int) ([]*models.WeeklyActivity, error)
	GetByUserAndWeek(ctx context.Context, userID int64, weekStart time.Time) (*models.WeeklyActivity, error)
}

type activityRepository struct {
	db bun.IDB
}

func NewActivityRepository(db bun.IDB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) IncrementMessageCount(ctx context.Context, userID int64, weekStart time.Time) error {
	activity := &models.WeeklyActivity{
		UserID:       userID,
		WeekStart:    weekStart,
		MessageCount: 1,
	}
	_, err := r.db.NewInsert().
		Model(activity).
		On("CONFLICT (user_id, week_start) DO UPDATE").
		Set("message_count = wa.message_count + 1").
		Exec(ctx)
	return err
}

func (r *activityRepository) GetTop(ctx context.Context, weekStart time.Time, limit int) ([]*models.WeeklyActivity, error) {
	var activities []*models.WeeklyActivity
	// Ties break by user id ascending so the leaderboard is deterministic.
	err := r.db.NewSelect().
		Model(&activities).
		Where("week_start = ?", weekStart).
		Order("message_count DESC", "user_id ASC").
		Limit(limit).
		Scan(ctx)
	return activities, err
}

func (r *activityRepository) GetByUserAndWeek(ctx context.Context, userID int64, weekStart time.Time) (*models.WeeklyActivity, error) {
	activity := new(models.WeeklyActivity)
	err := r.db.NewSelect().
		Model(activity).
		Where("user_id = ?", userID).
		Where("week_start = ?", weekStart).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return activity, nil
}

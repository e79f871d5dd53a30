package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/uptrace/bun"
)

type MissionRepository interface {
	Create(ctx context.Context, mission *models.Mission) error
	GetByID(ctx context.Context, missionID int64) (*models.Mission, error)
	Update(ctx context.Context, mission *models.Mission) error
	Delete(ctx context.Context, missionID int64) error
	GetByUser(ctx context.Context, userID int64) ([]*models.Mission, error)
	// CountByTypeSince counts missions of the given type created at or
	// after since, used as the duplicate guard for recurring assignment.
	CountByTypeSince(ctx context.Context, userID int64, missionType string, since time.Time) (int, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	GetExpiringBefore(ctx context.Context, now, deadline time.Time) ([]*models.Mission, error)
	MarkWarningSent(ctx context.Context, missionID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type missionRepository struct {
	db bun.IDB
}

func NewMissionRepository(db bun.IDB) MissionRepository {
	return &missionRepository{db: db}
}

func (r *missionRepository) Create(ctx context.Context, mission *models.Mission) error {
	if mission.CreatedAt.IsZero() {
		mission.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().Model(mission).Exec(ctx)
	return err
}

func (r *missionRepository) GetByID(ctx context.Context, missionID int64) (*models.Mission, error) {
	mission := new(models.Mission)
	err := r.db.NewSelect().
		Model(mission).
		Where("id = ?", missionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return mission, nil
}

func (r *missionRepository) Update(ctx context.Context, mission *models.Mission) error {
	_, err := r.db.NewUpdate().
		Model(mission).
		WherePK().
		Exec(ctx)
	return err
}

func (r *missionRepository) Delete(ctx context.Context, missionID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Mission)(nil)).
		Where("id = ?", missionID).
		Exec(ctx)
	return err
}

func (r *missionRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Mission, error) {
	var missions []*models.Mission
	err := r.db.NewSelect().
		Model(&missions).
		Where("user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)
	return missions, err
}

func (r *missionRepository) CountByTypeSince(ctx context.Context, userID int64, missionType string, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*models.Mission)(nil)).
		Where("user_id = ?", userID).
		Where("type = ?", missionType).
		Where("created_at >= ?", since).
		Count(ctx)
}

func (r *missionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.NewDelete().
		Model((*models.Mission)(nil)).
		Where("expires_at IS NOT NULL").
		Where("expires_at < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (r *missionRepository) GetExpiringBefore(ctx context.Context, now, deadline time.Time) ([]*models.Mission, error) {
	var missions []*models.Mission
	err := r.db.NewSelect().
		Model(&missions).
		Where("expires_at IS NOT NULL").
		Where("expires_at >= ?", now).
		Where("expires_at < ?", deadline).
		Where("warning_sent = ?", false).
		Order("expires_at ASC").
		Scan(ctx)
	return missions, err
}

func (r *missionRepository) MarkWarningSent(ctx context.Context, missionID int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.Mission)(nil)).
		Set("warning_sent = ?", true).
		Where("id = ?", missionID).
		Exec(ctx)
	return err
}

func (r *missionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Mission)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	return err
}

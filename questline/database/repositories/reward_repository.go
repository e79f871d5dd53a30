package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/uptrace/bun"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *models.Reward) error
	GetByID(ctx context.Context, rewardID int64) (*models.Reward, error)
	GetAll(ctx context.Context) ([]*models.Reward, error)
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	GetPurchasesByUser(ctx context.Context, userID int64) ([]*models.Purchase, error)
	// GetPurchaseCounts aggregates purchases per reward over [from, to).
	// The joined Reward is nil for purchases whose catalog entry no longer
	// exists.
	GetPurchaseCounts(ctx context.Context, from, to time.Time) ([]*models.PurchaseCount, error)
}

type rewardRepository struct {
	db bun.IDB
}

func NewRewardRepository(db bun.IDB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().Model(reward).Exec(ctx)
	return err
}

func (r *rewardRepository) GetByID(ctx context.Context, rewardID int64) (*models.Reward, error) {
	reward := new(models.Reward)
	err := r.db.NewSelect().
		Model(reward).
		Where("id = ?", rewardID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return reward, nil
}

func (r *rewardRepository) GetAll(ctx context.Context) ([]*models.Reward, error) {
	var rewards []*models.Reward
	err := r.db.NewSelect().
		Model(&rewards).
		Order("id ASC").
		Scan(ctx)
	return rewards, err
}

func (r *rewardRepository) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().Model(purchase).Exec(ctx)
	return err
}

func (r *rewardRepository) GetPurchasesByUser(ctx context.Context, userID int64) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	err := r.db.NewSelect().
		Model(&purchases).
		Relation("Reward").
		Where("p.user_id = ?", userID).
		Order("p.created_at ASC", "p.id ASC").
		Scan(ctx)
	return purchases, err
}

func (r *rewardRepository) GetPurchaseCounts(ctx context.Context, from, to time.Time) ([]*models.PurchaseCount, error) {
	var rows []struct {
		RewardID int64 `bun:"reward_id"`
		Count    int   `bun:"count"`
	}
	err := r.db.NewSelect().
		Model((*models.Purchase)(nil)).
		ColumnExpr("reward_id").
		ColumnExpr("count(*) AS count").
		Where("created_at >= ?", from).
		Where("created_at < ?", to).
		GroupExpr("reward_id").
		OrderExpr("count(*) DESC, reward_id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make([]*models.PurchaseCount, 0, len(rows))
	for _, row := range rows {
		reward, err := r.GetByID(ctx, row.RewardID)
		if err != nil {
			return nil, err
		}
		counts = append(counts, &models.PurchaseCount{
			RewardID: row.RewardID,
			Reward:   reward, // nil when the catalog entry was deleted
			Count:    row.Count,
		})
	}
	return counts, nil
}

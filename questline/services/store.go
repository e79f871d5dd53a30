package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/questline-bot/questline/questline/utils"
	"github.com/uptrace/bun"
)

// Redemption outcomes the caller may want to react to differently. Earlier
// iterations conflated these into one generic failure; keeping them apart
// lets the command layer tell the user what actually went wrong.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// StoreService manages the redeemable reward catalog and the purchase
// ledger.
type StoreService struct {
	db      *bun.DB
	rewards repositories.RewardRepository
	users   repositories.UserRepository

	Now func() time.Time
}

func NewStoreService(db *bun.DB, rewards repositories.RewardRepository, users repositories.UserRepository) *StoreService {
	return &StoreService{
		db:      db,
		rewards: rewards,
		users:   users,
		Now:     time.Now,
	}
}

// AddReward creates a catalog entry. Entries are immutable and never
// deduplicated.
func (s *StoreService) AddReward(ctx context.Context, name, description string, cost int64) (*models.Reward, error) {
	reward := &models.Reward{
		Name:        name,
		Description: description,
		Cost:        cost,
		CreatedAt:   s.Now().UTC(),
	}
	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, fmt.Errorf("failed to add reward: %w", err)
	}
	return reward, nil
}

// ListRewards returns the full catalog.
func (s *StoreService) ListRewards(ctx context.Context) ([]*models.Reward, error) {
	return s.rewards.GetAll(ctx)
}

// GetReward returns a single catalog entry, nil when absent.
func (s *StoreService) GetReward(ctx context.Context, rewardID int64) (*models.Reward, error) {
	return s.rewards.GetByID(ctx, rewardID)
}

// Redeem exchanges points for a reward. The debit and the purchase record
// commit together. The user's level is deliberately not recomputed on
// debit: level follows the historical maximum reached through credits, and
// spending points never demotes anyone.
func (s *StoreService) Redeem(ctx context.Context, userID, rewardID int64) (*models.Reward, error) {
	var redeemed *models.Reward
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		users := repositories.NewUserRepository(tx)
		rewards := repositories.NewRewardRepository(tx)

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		reward, err := rewards.GetByID(ctx, rewardID)
		if err != nil {
			return err
		}
		if reward == nil {
			return ErrRewardNotFound
		}

		if user.Points < reward.Cost {
			return ErrInsufficientPoints
		}

		user.Points -= reward.Cost
		if err := users.Update(ctx, user); err != nil {
			return err
		}

		if err := rewards.CreatePurchase(ctx, &models.Purchase{
			UserID:    userID,
			RewardID:  rewardID,
			CreatedAt: s.Now().UTC(),
		}); err != nil {
			return err
		}

		redeemed = reward
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Reward redeemed",
		slog.String("type", "sys"),
		slog.Int64("user_id", userID),
		slog.Int64("reward_id", rewardID),
		slog.Int64("cost", redeemed.Cost))
	return redeemed, nil
}

// PurchasesFor returns the user's full purchase history.
func (s *StoreService) PurchasesFor(ctx context.Context, userID int64) ([]*models.Purchase, error) {
	return s.rewards.GetPurchasesByUser(ctx, userID)
}

// MonthlySummary aggregates purchase counts per reward for the calendar
// month containing month. Deleted rewards appear with a nil Reward and
// their id retained.
func (s *StoreService) MonthlySummary(ctx context.Context, month time.Time) ([]*models.PurchaseCount, error) {
	from := utils.MonthStart(month)
	to := utils.NextMonth(month)
	return s.rewards.GetPurchaseCounts(ctx, from, to)
}

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/testutil"
	"github.com/questline-bot/questline/questline/utils"
	"github.com/stretchr/testify/require"
)

func TestRewardCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRewardRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Reward{Name: "Sticker pack", Cost: 50}))
	require.NoError(t, repo.Create(ctx, &models.Reward{Name: "Custom role", Cost: 200}))

	rewards, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	require.Equal(t, "Sticker pack", rewards[0].Name)

	got, err := repo.GetByID(ctx, rewards[1].ID)
	require.NoError(t, err)
	require.Equal(t, int64(200), got.Cost)

	got, err = repo.GetByID(ctx, 999)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetPurchaseCountsMonthWindow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRewardRepository(db)
	ctx := context.Background()

	sticker := &models.Reward{Name: "Sticker pack", Cost: 50}
	role := &models.Reward{Name: "Custom role", Cost: 200}
	require.NoError(t, repo.Create(ctx, sticker))
	require.NoError(t, repo.Create(ctx, role))

	may := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	buy := func(rewardID int64, at time.Time, n int) {
		for i := 0; i < n; i++ {
			require.NoError(t, repo.CreatePurchase(ctx, &models.Purchase{
				UserID: 1, RewardID: rewardID, CreatedAt: at,
			}))
		}
	}
	buy(sticker.ID, may, 2)
	buy(role.ID, may, 1)
	buy(sticker.ID, june, 3)

	from := utils.MonthStart(may)
	counts, err := repo.GetPurchaseCounts(ctx, from, utils.NextMonth(from))
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, sticker.ID, counts[0].RewardID)
	require.Equal(t, 2, counts[0].Count)
	require.Equal(t, "Sticker pack", counts[0].Reward.Name)
	require.Equal(t, 1, counts[1].Count)

	// June purchases stay out of the May window and vice versa.
	from = utils.MonthStart(june)
	counts, err = repo.GetPurchaseCounts(ctx, from, utils.NextMonth(from))
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Equal(t, 3, counts[0].Count)
}

func TestGetPurchaseCountsDeletedReward(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRewardRepository(db)
	ctx := context.Background()

	reward := &models.Reward{Name: "Limited run", Cost: 10}
	require.NoError(t, repo.Create(ctx, reward))

	now := time.Now().UTC()
	require.NoError(t, repo.CreatePurchase(ctx, &models.Purchase{UserID: 1, RewardID: reward.ID, CreatedAt: now}))

	_, err := db.NewDelete().
		Model((*models.Reward)(nil)).
		Where("id = ?", reward.ID).
		Exec(ctx)
	require.NoError(t, err)

	from := utils.MonthStart(now)
	counts, err := repo.GetPurchaseCounts(ctx, from, utils.NextMonth(from))
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Nil(t, counts[0].Reward)
	require.Equal(t, 1, counts[0].Count)
}

func TestGetPurchasesByUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRewardRepository(db)
	ctx := context.Background()

	reward := &models.Reward{Name: "Sticker pack", Cost: 50}
	require.NoError(t, repo.Create(ctx, reward))

	require.NoError(t, repo.CreatePurchase(ctx, &models.Purchase{UserID: 1, RewardID: reward.ID}))
	require.NoError(t, repo.CreatePurchase(ctx, &models.Purchase{UserID: 2, RewardID: reward.ID}))

	purchases, err := repo.GetPurchasesByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	require.NotNil(t, purchases[0].Reward)
	require.Equal(t, "Sticker pack", purchases[0].Reward.Name)
}

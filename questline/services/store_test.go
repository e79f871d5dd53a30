package services

import (
	"context"
	"testing"
	"time"

	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/questline-bot/questline/questline/testutil"
	"github.com/stretchr/testify/require"
)

func newStoreService(t *testing.T) (*StoreService, repositories.UserRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	rewards := repositories.NewRewardRepository(db)
	return NewStoreService(db, rewards, users), users
}

func TestRedeemDebitsAndRecords(t *testing.T) {
	svc, users := newStoreService(t)
	ctx := context.Background()

	user, _, err := users.EnsureUser(ctx, 1)
	require.NoError(t, err)
	user.AddPoints(120)
	require.NoError(t, users.Update(ctx, user))

	reward, err := svc.AddReward(ctx, "Sticker pack", "A pack of stickers", 50)
	require.NoError(t, err)

	redeemed, err := svc.Redeem(ctx, 1, reward.ID)
	require.NoError(t, err)
	require.Equal(t, reward.ID, redeemed.ID)

	user, err = users.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(70), user.Points)
	// Level reflects the historical maximum, not the post-debit balance.
	require.Equal(t, 2, user.Level)

	purchases, err := svc.PurchasesFor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	require.Equal(t, reward.ID, purchases[0].RewardID)
}

func TestRedeemInsufficientPoints(t *testing.T) {
	svc, users := newStoreService(t)
	ctx := context.Background()

	user, _, err := users.EnsureUser(ctx, 1)
	require.NoError(t, err)
	user.AddPoints(40)
	require.NoError(t, users.Update(ctx, user))

	reward, err := svc.AddReward(ctx, "Custom role", "", 50)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, 1, reward.ID)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	// Balance and the purchase ledger are untouched.
	user, err = users.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(40), user.Points)

	purchases, err := svc.PurchasesFor(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, purchases)
}

func TestRedeemUnknownUserAndReward(t *testing.T) {
	svc, users := newStoreService(t)
	ctx := context.Background()

	reward, err := svc.AddReward(ctx, "Sticker pack", "", 10)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, 77, reward.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = users.EnsureUser(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Redeem(ctx, 1, 999)
	require.ErrorIs(t, err, ErrRewardNotFound)
}

func TestMonthlySummary(t *testing.T) {
	svc, users := newStoreService(t)
	ctx := context.Background()

	user, _, err := users.EnsureUser(ctx, 1)
	require.NoError(t, err)
	user.AddPoints(1000)
	require.NoError(t, users.Update(ctx, user))

	sticker, err := svc.AddReward(ctx, "Sticker pack", "", 50)
	require.NoError(t, err)
	role, err := svc.AddReward(ctx, "Custom role", "", 200)
	require.NoError(t, err)

	may := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	svc.Now = func() time.Time { return may }
	for i := 0; i < 2; i++ {
		_, err = svc.Redeem(ctx, 1, sticker.ID)
		require.NoError(t, err)
	}
	_, err = svc.Redeem(ctx, 1, role.ID)
	require.NoError(t, err)

	svc.Now = func() time.Time { return june }
	_, err = svc.Redeem(ctx, 1, sticker.ID)
	require.NoError(t, err)

	counts, err := svc.MonthlySummary(ctx, may)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, sticker.ID, counts[0].RewardID)
	require.Equal(t, 2, counts[0].Count)
	require.Equal(t, role.ID, counts[1].RewardID)
	require.Equal(t, 1, counts[1].Count)

	counts, err = svc.MonthlySummary(ctx, june)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Equal(t, 1, counts[0].Count)
}

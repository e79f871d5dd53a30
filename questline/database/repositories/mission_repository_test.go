package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/testutil"
	"github.com/stretchr/testify/require"
)

func TestMissionLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMissionRepository(db)
	ctx := context.Background()

	mission := &models.Mission{
		UserID:      1,
		Description: "Do something",
		Points:      10,
		Type:        models.MissionTypeGeneric,
		Goal:        2,
	}
	require.NoError(t, repo.Create(ctx, mission))
	require.NotZero(t, mission.ID)

	got, err := repo.GetByID(ctx, mission.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Do something", got.Description)
	require.Equal(t, 0, got.Progress)

	got.Progress = 1
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, mission.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Progress)

	require.NoError(t, repo.Delete(ctx, mission.ID))
	got, err = repo.GetByID(ctx, mission.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMissionGetByIDMissing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMissionRepository(db)

	got, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDeleteExpiredIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMissionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.NoError(t, repo.Create(ctx, &models.Mission{UserID: 1, Description: "expired", Points: 1, Goal: 1, ExpiresAt: &past}))
	require.NoError(t, repo.Create(ctx, &models.Mission{UserID: 1, Description: "alive", Points: 1, Goal: 1, ExpiresAt: &future}))
	require.NoError(t, repo.Create(ctx, &models.Mission{UserID: 1, Description: "eternal", Points: 1, Goal: 1}))

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	removed, err = repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 0, removed)

	remaining, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
}

func TestNearExpiryWarningFlow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMissionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	soon := now.Add(2 * time.Hour)
	late := now.Add(48 * time.Hour)

	expiring := &models.Mission{UserID: 1, Description: "ending", Points: 1, Goal: 1, ExpiresAt: &soon}
	require.NoError(t, repo.Create(ctx, expiring))
	require.NoError(t, repo.Create(ctx, &models.Mission{UserID: 1, Description: "distant", Points: 1, Goal: 1, ExpiresAt: &late}))

	missions, err := repo.GetExpiringBefore(ctx, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, missions, 1)
	require.Equal(t, expiring.ID, missions[0].ID)

	require.NoError(t, repo.MarkWarningSent(ctx, expiring.ID))

	// Once warned, the mission never comes back for the same window.
	missions, err = repo.GetExpiringBefore(ctx, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Empty(t, missions)

	// Marking an absent mission is a no-op.
	require.NoError(t, repo.MarkWarningSent(ctx, 999))
}

func TestCountByTypeSince(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMissionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &models.Mission{
		UserID: 1, Description: "today", Points: 1, Goal: 1,
		Type: models.MissionTypeDaily, CreatedAt: now,
	}))
	require.NoError(t, repo.Create(ctx, &models.Mission{
		UserID: 1, Description: "yesterday", Points: 1, Goal: 1,
		Type: models.MissionTypeDaily, CreatedAt: now.Add(-24 * time.Hour),
	}))

	count, err := repo.CountByTypeSince(ctx, 1, models.MissionTypeDaily, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = repo.CountByTypeSince(ctx, 1, models.MissionTypeWeekly, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestDeleteByUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMissionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Mission{UserID: 1, Description: "a", Points: 1, Goal: 1}))
	require.NoError(t, repo.Create(ctx, &models.Mission{UserID: 1, Description: "b", Points: 1, Goal: 1}))
	require.NoError(t, repo.Create(ctx, &models.Mission{UserID: 2, Description: "c", Points: 1, Goal: 1}))

	require.NoError(t, repo.DeleteByUser(ctx, 1))

	mine, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, mine)

	theirs, err := repo.GetByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/questline-bot/questline/questline/testutil"
	"github.com/questline-bot/questline/questline/utils"
	"github.com/stretchr/testify/require"
)

func newRecurringService(t *testing.T) (*RecurringService, repositories.UserRepository, repositories.MissionRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	missions := repositories.NewMissionRepository(db)
	return NewRecurringService(missions, users), users, missions
}

func TestAssignDailyOncePerWindow(t *testing.T) {
	svc, users, missions := newRecurringService(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	for _, id := range []int64{1, 2, 3} {
		_, _, err := users.EnsureUser(ctx, id)
		require.NoError(t, err)
	}

	assigned, err := svc.AssignDaily(ctx, "Say hello", 5, 1)
	require.NoError(t, err)
	require.Equal(t, 3, assigned)

	// A second run inside the same day assigns nothing.
	assigned, err = svc.AssignDaily(ctx, "Say hello", 5, 1)
	require.NoError(t, err)
	require.Equal(t, 0, assigned)

	mine, err := missions.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, models.MissionTypeDaily, mine[0].Type)
	require.True(t, mine[0].ExpiresAt.Equal(utils.DayEnd(now)))

	// The next day the guard window has moved.
	svc.Now = func() time.Time { return now.AddDate(0, 0, 1) }
	assigned, err = svc.AssignDaily(ctx, "Say hello", 5, 1)
	require.NoError(t, err)
	require.Equal(t, 3, assigned)
}

func TestAssignWeeklyWindow(t *testing.T) {
	svc, users, missions := newRecurringService(t)
	ctx := context.Background()
	// A Wednesday; the week runs Monday to Monday.
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	_, _, err := users.EnsureUser(ctx, 1)
	require.NoError(t, err)

	assigned, err := svc.AssignWeekly(ctx, "Send 50 messages", 20, 50)
	require.NoError(t, err)
	require.Equal(t, 1, assigned)

	mine, err := missions.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, models.MissionTypeWeekly, mine[0].Type)
	require.Equal(t, 50, mine[0].Goal)
	require.True(t, mine[0].ExpiresAt.Equal(utils.WeekEnd(now)))

	// Friday of the same week: still guarded.
	svc.Now = func() time.Time { return time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC) }
	assigned, err = svc.AssignWeekly(ctx, "Send 50 messages", 20, 50)
	require.NoError(t, err)
	require.Equal(t, 0, assigned)

	// Next Monday: a fresh window.
	svc.Now = func() time.Time { return time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC) }
	assigned, err = svc.AssignWeekly(ctx, "Send 50 messages", 20, 50)
	require.NoError(t, err)
	require.Equal(t, 1, assigned)
}

func TestAssignNoUsers(t *testing.T) {
	svc, _, _ := newRecurringService(t)

	assigned, err := svc.AssignDaily(context.Background(), "Say hello", 5, 1)
	require.NoError(t, err)
	require.Equal(t, 0, assigned)
}

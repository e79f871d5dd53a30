package repositories

import (
	"context"
	"testing"

	"github.com/questline-bot/questline/questline/testutil"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserCreatesOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, created, err := repo.EnsureUser(ctx, 42)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, int64(42), user.ID)
	require.Equal(t, int64(0), user.Points)
	require.Equal(t, 1, user.Level)

	user.AddPoints(30)
	require.NoError(t, repo.Update(ctx, user))

	again, created, err := repo.EnsureUser(ctx, 42)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, int64(30), again.Points)
}

func TestGetByIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		_, _, err := repo.EnsureUser(ctx, id)
		require.NoError(t, err)
	}

	users, err := repo.GetByIDs(ctx, []int64{1, 3, 5})
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, users)
}

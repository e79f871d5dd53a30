package services

import (
	"context"
	"testing"

	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/questline-bot/questline/questline/testutil"
	"github.com/stretchr/testify/require"
)

func newAchievementService(t *testing.T) (*AchievementService, repositories.UserRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	achievements := repositories.NewAchievementRepository(db)
	return NewAchievementService(achievements, users), users
}

func TestAwardRecordsAndBadges(t *testing.T) {
	svc, users := newAchievementService(t)
	ctx := context.Background()

	_, err := svc.Award(ctx, 1, "Helper", "Helped a newcomer")
	require.NoError(t, err)

	user, err := users.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"Helper"}, user.BadgeSet())

	// A repeat award keeps the history but not a duplicate badge.
	_, err = svc.Award(ctx, 1, "Helper", "Helped again")
	require.NoError(t, err)
	_, err = svc.Award(ctx, 1, "Veteran", "")
	require.NoError(t, err)

	history, err := svc.GetForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 3)

	user, err = users.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"Helper", "Veteran"}, user.BadgeSet())
}

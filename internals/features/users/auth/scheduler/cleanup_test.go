package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authModel "stogie_backend/internals/features/users/auth/model"
	"stogie_backend/internals/features/users/auth/scheduler"
	helperAuth "stogie_backend/internals/helpers/auth"
	"stogie_backend/internals/testutil"
)

func TestRunCleanup(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "sweeper")
	now := time.Now().UTC()

	require.NoError(t, helperAuth.Add(ctx, db, "old", "s", now.Add(-time.Minute)))
	require.NoError(t, helperAuth.Add(ctx, db, "new", "s", now.Add(time.Hour)))
	revoked := now
	for i, rt := range []authModel.RefreshTokenModel{
		{UserID: u.ID, TokenHash: "a", ExpiresAt: now.Add(-time.Hour)},
		{UserID: u.ID, TokenHash: "b", ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked},
		{UserID: u.ID, TokenHash: "c", ExpiresAt: now.Add(time.Hour)},
	} {
		require.NoError(t, db.Create(&rt).Error, i)
	}

	require.NoError(t, scheduler.RunCleanup(ctx, db))

	var bl, rts int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&bl).Error)
	require.NoError(t, db.Model(&authModel.RefreshTokenModel{}).Count(&rts).Error)
	require.Equal(t, int64(1), bl)
	require.Equal(t, int64(1), rts)
}

func TestStartScheduler(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := scheduler.StartBlacklistCleanupScheduler(db, "not a spec")
	require.Error(t, err)

	c, err := scheduler.StartBlacklistCleanupScheduler(db, "")
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	c.Stop()
}

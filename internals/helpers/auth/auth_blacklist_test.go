package helper_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	helperAuth "stogie_backend/internals/helpers/auth"
	"stogie_backend/internals/testutil"
)

func TestHashToken(t *testing.T) {
	a := helperAuth.HashToken("tok", "s1")
	require.Len(t, a, 64)
	require.Equal(t, a, helperAuth.HashToken("tok", "s1"))
	require.NotEqual(t, a, helperAuth.HashToken("tok", "s2"))
}

func TestBlacklistLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	const secret = "s"

	ok, err := helperAuth.IsBlacklisted(ctx, db, "live", secret)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, helperAuth.Add(ctx, db, "live", secret, time.Now().Add(time.Hour)))
	require.NoError(t, helperAuth.Add(ctx, db, "stale", secret, time.Now().Add(-time.Hour)))
	// re-adding moves the expiry instead of failing on the unique token
	require.NoError(t, helperAuth.Add(ctx, db, "live", secret, time.Now().Add(2*time.Hour)))

	ok, err = helperAuth.IsBlacklisted(ctx, db, "live", secret)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = helperAuth.IsBlacklisted(ctx, db, "stale", secret)
	require.NoError(t, err)
	require.False(t, ok)

	n, err := helperAuth.PurgeExpired(ctx, db)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	var rows int64
	require.NoError(t, db.Table("token_blacklist").Count(&rows).Error)
	require.Equal(t, int64(1), rows)

	require.NoError(t, helperAuth.Add(ctx, nil, "x", secret, time.Now()))
	ok, err = helperAuth.IsBlacklisted(ctx, db, "  ", secret)
	require.NoError(t, err)
	require.False(t, ok)
}

package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "stogie_backend/internals/features/users/auth/repository"
	helperAuth "stogie_backend/internals/helpers/auth"
)

// RunCleanup drops expired blacklist entries and dead refresh tokens once.
func RunCleanup(ctx context.Context, db *gorm.DB) error {
	bl, err := helperAuth.PurgeExpired(ctx, db)
	if err != nil {
		return fmt.Errorf("purge token_blacklist: %w", err)
	}
	rt, err := authRepo.DeleteExpiredRefreshTokens(ctx, db)
	if err != nil {
		return fmt.Errorf("purge refresh_tokens: %w", err)
	}
	log.Printf("[CLEANUP] removed %d blacklist entries, %d refresh tokens", bl, rt)
	return nil
}

// StartBlacklistCleanupScheduler schedules RunCleanup on spec (e.g. "@daily").
// The caller owns the returned cron and must Stop it on shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = "@daily"
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := RunCleanup(ctx, db); err != nil {
			log.Printf("[CLEANUP ERROR] %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule cleanup %q: %w", spec, err)
	}
	c.Start()
	log.Printf("[CLEANUP] scheduled with spec=%q", spec)
	return c, nil
}

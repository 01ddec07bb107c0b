package seeds

import (
	"context"

	"gorm.io/gorm"

	"stogie_backend/internals/seeds/cigars"
	"stogie_backend/internals/seeds/shops"
)

// RunAllSeeds loads the bundled catalog data. Users are never seeded.
func RunAllSeeds(ctx context.Context, db *gorm.DB) error {
	if _, err := cigars.SeedCigars(ctx, db); err != nil {
		return err
	}
	if _, err := shops.SeedShops(ctx, db); err != nil {
		return err
	}
	return nil
}

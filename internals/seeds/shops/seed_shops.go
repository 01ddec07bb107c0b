package shops

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stogie_backend/internals/features/catalog/shops/dto"
	helper "stogie_backend/internals/helpers"
)

//go:embed data_shops.json
var dataShops []byte

func SeedShops(ctx context.Context, db *gorm.DB) (int64, error) {
	var inputs []dto.CreateShopRequest
	if err := sonic.Unmarshal(dataShops, &inputs); err != nil {
		return 0, fmt.Errorf("decode shops seed: %w", err)
	}

	var inserted int64
	for _, in := range inputs {
		in.Normalize()
		if err := helper.Validate.Struct(in); err != nil {
			log.Printf("[SEED] skip shop %q: %v", in.Name, err)
			continue
		}
		row := in.ToModel(helper.Slugify(in.Name+" "+in.City, 120), uuid.Nil)
		row.ShopCreatedBy = nil
		res := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "shop_slug"}}, DoNothing: true}).
			Create(&row)
		if res.Error != nil {
			return inserted, fmt.Errorf("insert shop %q: %w", row.ShopSlug, res.Error)
		}
		inserted += res.RowsAffected
	}
	log.Printf("[SEED] shops: %d inserted, %d bundled", inserted, len(inputs))
	return inserted, nil
}

package cigars

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stogie_backend/internals/features/catalog/cigars/dto"
	helper "stogie_backend/internals/helpers"
)

//go:embed data_cigars.json
var dataCigars []byte

const slugMaxLen = 120

// SeedCigars inserts the bundled catalog. Rows whose slug already exists are skipped,
// so running it twice is harmless.
func SeedCigars(ctx context.Context, db *gorm.DB) (int64, error) {
	var inputs []dto.CreateCigarRequest
	if err := sonic.Unmarshal(dataCigars, &inputs); err != nil {
		return 0, fmt.Errorf("decode cigars seed: %w", err)
	}

	var inserted int64
	for _, in := range inputs {
		in.Normalize()
		if err := helper.Validate.Struct(in); err != nil {
			log.Printf("[SEED] skip cigar %q: %v", in.Name, err)
			continue
		}
		row, err := in.ToModel(helper.Slugify(in.Brand+" "+in.Name, slugMaxLen), nil)
		if err != nil {
			return inserted, err
		}
		res := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "cigar_slug"}}, DoNothing: true}).
			Create(&row)
		if res.Error != nil {
			return inserted, fmt.Errorf("insert cigar %q: %w", row.CigarSlug, res.Error)
		}
		inserted += res.RowsAffected
	}
	log.Printf("[SEED] cigars: %d inserted, %d bundled", inserted, len(inputs))
	return inserted, nil
}

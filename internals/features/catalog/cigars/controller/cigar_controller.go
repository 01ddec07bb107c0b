package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/cigars/dto"
	"stogie_backend/internals/features/catalog/cigars/model"
	helper "stogie_backend/internals/helpers"
)

const slugMaxLen = 120

type CigarController struct {
	DB *gorm.DB
}

func NewCigarController(db *gorm.DB) *CigarController {
	return &CigarController{DB: db}
}

// FindBySlug is shared with the reviews feature.
func FindBySlug(c *fiber.Ctx, db *gorm.DB) (*model.CigarModel, error) {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	var m model.CigarModel
	err := db.WithContext(c.UserContext()).Where("cigar_slug = ?", slug).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Cigar not found")
	}
	if err != nil {
		return nil, helper.MapDBError(err, "cigar")
	}
	return &m, nil
}

func (cc *CigarController) ratingStats(c *fiber.Ctx, ids []uuid.UUID) (map[uuid.UUID]dto.RatingStat, error) {
	out := map[uuid.UUID]dto.RatingStat{}
	if len(ids) == 0 {
		return out, nil
	}
	var stats []dto.RatingStat
	if err := cc.DB.WithContext(c.UserContext()).
		Table("cigar_reviews").
		Select("cigar_review_cigar_id AS cigar_id, COUNT(*) AS review_count, AVG(cigar_review_rating) AS avg_rating").
		Where("cigar_review_cigar_id IN ?", ids).
		Group("cigar_review_cigar_id").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return lo.KeyBy(stats, func(s dto.RatingStat) uuid.UUID { return s.CigarID }), nil
}

func withStats(resp dto.CigarResponse, stats map[uuid.UUID]dto.RatingStat) dto.CigarResponse {
	if s, ok := stats[resp.CigarID]; ok {
		resp.ReviewCount = s.ReviewCount
		avg := s.AvgRating
		resp.AvgRating = &avg
	}
	return resp
}

// GET /api/cigars?q=&brand=&strength=
func (cc *CigarController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.DefaultOpts)
	q := cc.DB.WithContext(c.UserContext()).Model(&model.CigarModel{})

	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(cigar_name) LIKE ? OR LOWER(cigar_brand) LIKE ?", like, like)
	}
	if b := strings.ToLower(strings.TrimSpace(c.Query("brand"))); b != "" {
		q = q.Where("LOWER(cigar_brand) = ?", b)
	}
	if st := strings.ToLower(strings.TrimSpace(c.Query("strength"))); st != "" {
		if !lo.Contains([]string{model.StrengthMild, model.StrengthMedium, model.StrengthFull}, st) {
			return fiber.NewError(fiber.StatusBadRequest, "strength must be one of: mild medium full")
		}
		q = q.Where("cigar_strength = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "cigar")
	}
	var rows []model.CigarModel
	if err := q.Order("cigar_brand ASC, cigar_name ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "cigar")
	}

	stats, err := cc.ratingStats(c, lo.Map(rows, func(m model.CigarModel, _ int) uuid.UUID { return m.CigarID }))
	if err != nil {
		return helper.MapDBError(err, "cigar")
	}
	out := lo.Map(rows, func(m model.CigarModel, _ int) dto.CigarResponse {
		return withStats(dto.ToCigarResponse(m), stats)
	})
	return helper.JsonList(c, "Cigars fetched", fiber.Map{"cigars": out}, helper.BuildPagination(total, p, len(out)))
}

// GET /api/cigars/:slug
func (cc *CigarController) GetBySlug(c *fiber.Ctx) error {
	m, err := FindBySlug(c, cc.DB)
	if err != nil {
		return err
	}
	stats, err := cc.ratingStats(c, []uuid.UUID{m.CigarID})
	if err != nil {
		return helper.MapDBError(err, "cigar")
	}
	return helper.JsonOK(c, "Cigar fetched", fiber.Map{"cigar": withStats(dto.ToCigarResponse(*m), stats)})
}

// POST /api/cigars
func (cc *CigarController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCigarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	base := helper.Slugify(req.Brand+" "+req.Name, slugMaxLen)
	slug, err := helper.EnsureUniqueSlug(c.UserContext(), cc.DB, "cigars", "cigar_slug", base, slugMaxLen)
	if err != nil {
		return helper.MapDBError(err, "cigar")
	}
	m, err := req.ToModel(slug, &userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid flavor notes")
	}
	if err := cc.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.MapDBError(err, "cigar")
	}
	return helper.JsonCreated(c, "Cigar created", fiber.Map{"cigar": dto.ToCigarResponse(m)})
}

// DELETE /api/cigars/:slug (admin)
func (cc *CigarController) Delete(c *fiber.Ctx) error {
	m, err := FindBySlug(c, cc.DB)
	if err != nil {
		return err
	}
	err = cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM cigar_reviews WHERE cigar_review_cigar_id = ?", m.CigarID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CigarModel{}, "cigar_id = ?", m.CigarID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "cigar")
	}
	return helper.JsonDeleted(c, "Cigar deleted", fiber.Map{"slug": m.CigarSlug})
}

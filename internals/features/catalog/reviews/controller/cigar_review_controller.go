package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	cigarController "stogie_backend/internals/features/catalog/cigars/controller"
	"stogie_backend/internals/features/catalog/reviews/dto"
	"stogie_backend/internals/features/catalog/reviews/model"
	helper "stogie_backend/internals/helpers"
)

type CigarReviewController struct {
	DB  *gorm.DB
	Pub events.Publisher
}

func NewCigarReviewController(db *gorm.DB, pub events.Publisher) *CigarReviewController {
	if pub == nil {
		pub = events.Noop{}
	}
	return &CigarReviewController{DB: db, Pub: pub}
}

func (rc *CigarReviewController) joined(c *fiber.Ctx) *gorm.DB {
	return rc.DB.WithContext(c.UserContext()).Table("cigar_reviews r").
		Select(`r.cigar_review_id, r.cigar_review_cigar_id, r.cigar_review_user_id, r.cigar_review_rating,
			r.cigar_review_text, r.cigar_review_created_at, r.cigar_review_updated_at,
			u.user_name AS author_handle,
			up.user_profile_display_name AS author_display_name,
			up.user_profile_avatar_url AS author_avatar_url`).
		Joins("JOIN users u ON u.id = r.cigar_review_user_id").
		Joins("LEFT JOIN user_profiles up ON up.user_profile_user_id = r.cigar_review_user_id")
}

func (rc *CigarReviewController) findRow(c *fiber.Ctx, id uuid.UUID) (*dto.ReviewRow, error) {
	var rows []dto.ReviewRow
	if err := rc.joined(c).
		Where("r.cigar_review_id = ?", id).Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, "review")
	}
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Review not found")
	}
	return &rows[0], nil
}

// ownReview loads :id and checks the caller wrote it.
func (rc *CigarReviewController) ownReview(c *fiber.Ctx) (*model.CigarReviewModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.CigarReviewModel
	err = rc.DB.WithContext(c.UserContext()).Where("cigar_review_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Review not found")
	}
	if err != nil {
		return nil, helper.MapDBError(err, "review")
	}
	if m.CigarReviewUserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only the author can change this review")
	}
	return &m, nil
}

// GET /api/cigars/:slug/reviews
func (rc *CigarReviewController) ListByCigar(c *fiber.Ctx) error {
	cigar, err := cigarController.FindBySlug(c, rc.DB)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, helper.DefaultOpts)

	var total int64
	if err := rc.DB.WithContext(c.UserContext()).Model(&model.CigarReviewModel{}).
		Where("cigar_review_cigar_id = ?", cigar.CigarID).Count(&total).Error; err != nil {
		return helper.MapDBError(err, "review")
	}
	var rows []dto.ReviewRow
	if err := rc.joined(c).
		Where("r.cigar_review_cigar_id = ?", cigar.CigarID).
		Order("r.cigar_review_created_at DESC, r.cigar_review_id DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.MapDBError(err, "review")
	}
	return helper.JsonList(c, "Reviews fetched", fiber.Map{"reviews": dto.ToReviewDTOs(rows)}, helper.BuildPagination(total, p, len(rows)))
}

// POST /api/cigars/:slug/reviews
func (rc *CigarReviewController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	cigar, err := cigarController.FindBySlug(c, rc.DB)
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	m := model.CigarReviewModel{
		CigarReviewCigarID: cigar.CigarID,
		CigarReviewUserID:  userID,
		CigarReviewRating:  req.Rating,
		CigarReviewText:    req.Text,
	}
	if err := rc.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "You already reviewed this cigar")
		}
		return helper.MapDBError(err, "review")
	}
	rc.Pub.Publish(events.SubjectReviewCreated, events.Activity{ActorID: userID, TargetID: &cigar.CigarID})

	row, err := rc.findRow(c, m.CigarReviewID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Review created", fiber.Map{"review": row.ToDTO()})
}

// PUT /api/reviews/:id
func (rc *CigarReviewController) Update(c *fiber.Ctx) error {
	m, err := rc.ownReview(c)
	if err != nil {
		return err
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	if changes := req.Changes(); len(changes) > 0 {
		if err := rc.DB.WithContext(c.UserContext()).Model(&model.CigarReviewModel{}).
			Where("cigar_review_id = ?", m.CigarReviewID).
			Updates(changes).Error; err != nil {
			return helper.MapDBError(err, "review")
		}
	}
	row, err := rc.findRow(c, m.CigarReviewID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Review updated", fiber.Map{"review": row.ToDTO()})
}

// DELETE /api/reviews/:id
func (rc *CigarReviewController) Delete(c *fiber.Ctx) error {
	m, err := rc.ownReview(c)
	if err != nil {
		return err
	}
	if err := rc.DB.WithContext(c.UserContext()).
		Delete(&model.CigarReviewModel{}, "cigar_review_id = ?", m.CigarReviewID).Error; err != nil {
		return helper.MapDBError(err, "review")
	}
	return helper.JsonDeleted(c, "Review deleted", fiber.Map{"review_id": m.CigarReviewID})
}

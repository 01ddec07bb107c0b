package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	cigarModel "stogie_backend/internals/features/catalog/cigars/model"
	"stogie_backend/internals/features/catalog/humidors/dto"
	"stogie_backend/internals/features/catalog/humidors/model"
	helper "stogie_backend/internals/helpers"
)

type HumidorEntryController struct {
	DB *gorm.DB
}

func NewHumidorEntryController(db *gorm.DB) *HumidorEntryController {
	return &HumidorEntryController{DB: db}
}

func (hc *HumidorEntryController) rows(c *fiber.Ctx, userID uuid.UUID) *gorm.DB {
	return hc.DB.WithContext(c.UserContext()).
		Table("humidor_entries h").
		Select(`h.humidor_entry_id, h.humidor_entry_cigar_id, h.humidor_entry_status, h.humidor_entry_quantity,
			h.humidor_entry_notes, h.humidor_entry_acquired_at, h.humidor_entry_created_at,
			cg.cigar_slug, cg.cigar_name, cg.cigar_brand`).
		Joins("JOIN cigars cg ON cg.cigar_id = h.humidor_entry_cigar_id").
		Where("h.humidor_entry_user_id = ?", userID)
}

func (hc *HumidorEntryController) one(c *fiber.Ctx, userID, id uuid.UUID) (*dto.HumidorEntryDTO, error) {
	var rows []dto.HumidorEntryRow
	if err := hc.rows(c, userID).Where("h.humidor_entry_id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, "humidor entry")
	}
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Humidor entry not found")
	}
	return &dto.ToHumidorEntryDTOs(rows)[0], nil
}

// owned loads :id for the caller: 404 when absent, 403 when someone else's.
func (hc *HumidorEntryController) owned(c *fiber.Ctx) (uuid.UUID, *model.HumidorEntryModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, nil, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, nil, err
	}
	var m model.HumidorEntryModel
	err = hc.DB.WithContext(c.UserContext()).Where("humidor_entry_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusNotFound, "Humidor entry not found")
	}
	if err != nil {
		return uuid.Nil, nil, helper.MapDBError(err, "humidor entry")
	}
	if m.HumidorEntryUserID != userID {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusForbidden, "This humidor entry belongs to someone else")
	}
	return userID, &m, nil
}

// GET /api/humidor?status=
func (hc *HumidorEntryController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, helper.DefaultOpts)

	q := hc.rows(c, userID)
	cq := hc.DB.WithContext(c.UserContext()).Model(&model.HumidorEntryModel{}).Where("humidor_entry_user_id = ?", userID)
	switch st := c.Query("status"); st {
	case "":
	case model.StatusOwned, model.StatusWishlist:
		q = q.Where("h.humidor_entry_status = ?", st)
		cq = cq.Where("humidor_entry_status = ?", st)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "status must be one of: owned wishlist")
	}

	var total int64
	if err := cq.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "humidor entry")
	}
	var rows []dto.HumidorEntryRow
	if err := q.Order("h.humidor_entry_created_at DESC, h.humidor_entry_id DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.MapDBError(err, "humidor entry")
	}
	return helper.JsonList(c, "Humidor fetched", fiber.Map{"entries": dto.ToHumidorEntryDTOs(rows)}, helper.BuildPagination(total, p, len(rows)))
}

// POST /api/humidor
func (hc *HumidorEntryController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateHumidorEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	var n int64
	if err := hc.DB.WithContext(c.UserContext()).Model(&cigarModel.CigarModel{}).
		Where("cigar_id = ?", req.CigarID).Count(&n).Error; err != nil {
		return helper.MapDBError(err, "cigar")
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Cigar not found")
	}

	m := model.HumidorEntryModel{
		HumidorEntryUserID:     userID,
		HumidorEntryCigarID:    req.CigarID,
		HumidorEntryStatus:     req.Status,
		HumidorEntryQuantity:   1,
		HumidorEntryNotes:      req.Notes,
		HumidorEntryAcquiredAt: req.AcquiredAt,
	}
	if req.Quantity != nil {
		m.HumidorEntryQuantity = *req.Quantity
	}
	if err := hc.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.MapDBError(err, "humidor entry")
	}
	out, err := hc.one(c, userID, m.HumidorEntryID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Humidor entry added", fiber.Map{"entry": out})
}

// PUT /api/humidor/:id
func (hc *HumidorEntryController) Update(c *fiber.Ctx) error {
	userID, m, err := hc.owned(c)
	if err != nil {
		return err
	}
	var req dto.UpdateHumidorEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	if changes := req.Changes(); len(changes) > 0 {
		if err := hc.DB.WithContext(c.UserContext()).Model(&model.HumidorEntryModel{}).
			Where("humidor_entry_id = ?", m.HumidorEntryID).
			Updates(changes).Error; err != nil {
			return helper.MapDBError(err, "humidor entry")
		}
	}
	out, err := hc.one(c, userID, m.HumidorEntryID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Humidor entry updated", fiber.Map{"entry": out})
}

// DELETE /api/humidor/:id
func (hc *HumidorEntryController) Delete(c *fiber.Ctx) error {
	_, m, err := hc.owned(c)
	if err != nil {
		return err
	}
	if err := hc.DB.WithContext(c.UserContext()).
		Delete(&model.HumidorEntryModel{}, "humidor_entry_id = ?", m.HumidorEntryID).Error; err != nil {
		return helper.MapDBError(err, "humidor entry")
	}
	return helper.JsonDeleted(c, "Humidor entry removed", fiber.Map{"entry_id": m.HumidorEntryID})
}

package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	cigarModel "stogie_backend/internals/features/catalog/cigars/model"
	"stogie_backend/internals/features/catalog/sessions/dto"
	"stogie_backend/internals/features/catalog/sessions/model"
	shopModel "stogie_backend/internals/features/catalog/shops/model"
	helper "stogie_backend/internals/helpers"
)

type SmokingSessionController struct {
	DB *gorm.DB
}

func NewSmokingSessionController(db *gorm.DB) *SmokingSessionController {
	return &SmokingSessionController{DB: db}
}

func (sc *SmokingSessionController) rows(c *fiber.Ctx, userID uuid.UUID) *gorm.DB {
	return sc.DB.WithContext(c.UserContext()).
		Table("smoking_sessions s").
		Select(`s.smoking_session_id, s.smoking_session_smoked_at, s.smoking_session_duration_minutes,
			s.smoking_session_pairing, s.smoking_session_notes, s.smoking_session_cigar_id, s.smoking_session_shop_id,
			cg.cigar_slug, cg.cigar_name, sh.shop_name`).
		Joins("JOIN cigars cg ON cg.cigar_id = s.smoking_session_cigar_id").
		Joins("LEFT JOIN shops sh ON sh.shop_id = s.smoking_session_shop_id").
		Where("s.smoking_session_user_id = ?", userID)
}

func (sc *SmokingSessionController) one(c *fiber.Ctx, userID, id uuid.UUID) (*dto.SessionDTO, error) {
	var rows []dto.SessionRow
	if err := sc.rows(c, userID).Where("s.smoking_session_id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, "session")
	}
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return &dto.ToSessionDTOs(rows)[0], nil
}

func (sc *SmokingSessionController) owned(c *fiber.Ctx) (uuid.UUID, *model.SmokingSessionModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, nil, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, nil, err
	}
	var m model.SmokingSessionModel
	err = sc.DB.WithContext(c.UserContext()).Where("smoking_session_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if err != nil {
		return uuid.Nil, nil, helper.MapDBError(err, "session")
	}
	if m.SmokingSessionUserID != userID {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusForbidden, "This session belongs to someone else")
	}
	return userID, &m, nil
}

// GET /api/sessions
func (sc *SmokingSessionController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, helper.DefaultOpts)

	var total int64
	if err := sc.DB.WithContext(c.UserContext()).Model(&model.SmokingSessionModel{}).
		Where("smoking_session_user_id = ?", userID).Count(&total).Error; err != nil {
		return helper.MapDBError(err, "session")
	}
	var rows []dto.SessionRow
	if err := sc.rows(c, userID).
		Order("s.smoking_session_smoked_at DESC, s.smoking_session_id DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.MapDBError(err, "session")
	}
	return helper.JsonList(c, "Sessions fetched", fiber.Map{"sessions": dto.ToSessionDTOs(rows)}, helper.BuildPagination(total, p, len(rows)))
}

// POST /api/sessions
func (sc *SmokingSessionController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	db := sc.DB.WithContext(c.UserContext())
	var n int64
	if err := db.Model(&cigarModel.CigarModel{}).Where("cigar_id = ?", req.CigarID).Count(&n).Error; err != nil {
		return helper.MapDBError(err, "cigar")
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Cigar not found")
	}
	if req.ShopID != nil {
		if err := db.Model(&shopModel.ShopModel{}).Where("shop_id = ?", *req.ShopID).Count(&n).Error; err != nil {
			return helper.MapDBError(err, "shop")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Shop not found")
		}
	}

	m := model.SmokingSessionModel{
		SmokingSessionUserID:          userID,
		SmokingSessionCigarID:         req.CigarID,
		SmokingSessionShopID:          req.ShopID,
		SmokingSessionDurationMinutes: req.DurationMinutes,
		SmokingSessionPairing:         req.Pairing,
		SmokingSessionNotes:           req.Notes,
	}
	if req.SmokedAt != nil {
		m.SmokingSessionSmokedAt = req.SmokedAt.UTC()
	} else {
		m.SmokingSessionSmokedAt = time.Now().UTC()
	}
	if err := db.Create(&m).Error; err != nil {
		return helper.MapDBError(err, "session")
	}
	out, err := sc.one(c, userID, m.SmokingSessionID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Session logged", fiber.Map{"session": out})
}

// PUT /api/sessions/:id
func (sc *SmokingSessionController) Update(c *fiber.Ctx) error {
	userID, m, err := sc.owned(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	if changes := req.Changes(); len(changes) > 0 {
		if err := sc.DB.WithContext(c.UserContext()).Model(&model.SmokingSessionModel{}).
			Where("smoking_session_id = ?", m.SmokingSessionID).
			Updates(changes).Error; err != nil {
			return helper.MapDBError(err, "session")
		}
	}
	out, err := sc.one(c, userID, m.SmokingSessionID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Session updated", fiber.Map{"session": out})
}

// DELETE /api/sessions/:id
func (sc *SmokingSessionController) Delete(c *fiber.Ctx) error {
	_, m, err := sc.owned(c)
	if err != nil {
		return err
	}
	if err := sc.DB.WithContext(c.UserContext()).
		Delete(&model.SmokingSessionModel{}, "smoking_session_id = ?", m.SmokingSessionID).Error; err != nil {
		return helper.MapDBError(err, "session")
	}
	return helper.JsonDeleted(c, "Session deleted", fiber.Map{"session_id": m.SmokingSessionID})
}

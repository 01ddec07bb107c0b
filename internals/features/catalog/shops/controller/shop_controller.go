package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/shops/dto"
	"stogie_backend/internals/features/catalog/shops/model"
	helper "stogie_backend/internals/helpers"
)

const slugMaxLen = 120

type ShopController struct {
	DB *gorm.DB
}

func NewShopController(db *gorm.DB) *ShopController {
	return &ShopController{DB: db}
}

func (sc *ShopController) bySlug(c *fiber.Ctx) (*model.ShopModel, error) {
	var m model.ShopModel
	err := sc.DB.WithContext(c.UserContext()).
		Where("shop_slug = ?", strings.ToLower(strings.TrimSpace(c.Params("slug")))).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Shop not found")
	}
	if err != nil {
		return nil, helper.MapDBError(err, "shop")
	}
	return &m, nil
}

// GET /api/shops?city=&q=
func (sc *ShopController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.DefaultOpts)
	q := sc.DB.WithContext(c.UserContext()).Model(&model.ShopModel{})
	if city := strings.ToLower(strings.TrimSpace(c.Query("city"))); city != "" {
		q = q.Where("LOWER(shop_city) LIKE ?", city+"%")
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		q = q.Where("LOWER(shop_name) LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "shop")
	}
	rows := []model.ShopModel{}
	if err := q.Order("shop_city ASC, shop_name ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "shop")
	}
	return helper.JsonList(c, "Shops fetched", fiber.Map{"shops": rows}, helper.BuildPagination(total, p, len(rows)))
}

// GET /api/shops/:slug
func (sc *ShopController) GetBySlug(c *fiber.Ctx) error {
	m, err := sc.bySlug(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Shop fetched", fiber.Map{"shop": m})
}

// POST /api/shops
func (sc *ShopController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateShopRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	base := helper.Slugify(req.Name+" "+req.City, slugMaxLen)
	slug, err := helper.EnsureUniqueSlug(c.UserContext(), sc.DB, "shops", "shop_slug", base, slugMaxLen)
	if err != nil {
		return helper.MapDBError(err, "shop")
	}
	m := req.ToModel(slug, userID)
	if err := sc.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.MapDBError(err, "shop")
	}
	return helper.JsonCreated(c, "Shop created", fiber.Map{"shop": m})
}

// DELETE /api/shops/:slug (admin)
func (sc *ShopController) Delete(c *fiber.Ctx) error {
	m, err := sc.bySlug(c)
	if err != nil {
		return err
	}
	if err := sc.DB.WithContext(c.UserContext()).Delete(&model.ShopModel{}, "shop_id = ?", m.ShopID).Error; err != nil {
		return helper.MapDBError(err, "shop")
	}
	return helper.JsonDeleted(c, "Shop deleted", fiber.Map{"slug": m.ShopSlug})
}

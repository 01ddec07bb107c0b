package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	postModel "stogie_backend/internals/features/social/posts/model"
	"stogie_backend/internals/features/users/user/dto"
	"stogie_backend/internals/features/users/user/model"
	"stogie_backend/internals/features/users/user/repository"
	followModel "stogie_backend/internals/features/users/user_follows/model"
	helper "stogie_backend/internals/helpers"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

func (pc *ProfileController) build(c *fiber.Ctx, u model.UserModel) (dto.ProfileResponse, error) {
	ctx := c.UserContext()
	p, err := repository.FindProfile(ctx, pc.DB, u)
	if err != nil {
		return dto.ProfileResponse{}, helper.MapDBError(err, "profile")
	}
	out := dto.ToProfileResponse(u, *p)

	db := pc.DB.WithContext(ctx)
	if err := db.Model(&followModel.UserFollowModel{}).
		Where("user_follow_followee_id = ?", u.ID).Count(&out.FollowerCount).Error; err != nil {
		return out, helper.MapDBError(err, "profile")
	}
	if err := db.Model(&followModel.UserFollowModel{}).
		Where("user_follow_follower_id = ?", u.ID).Count(&out.FollowingCount).Error; err != nil {
		return out, helper.MapDBError(err, "profile")
	}
	if err := db.Model(&postModel.PostModel{}).
		Where("post_author_id = ? AND post_deleted_at IS NULL", u.ID).Count(&out.PostCount).Error; err != nil {
		return out, helper.MapDBError(err, "profile")
	}
	return out, nil
}

// GET /api/profiles/me
func (pc *ProfileController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var u model.UserModel
	if err := pc.DB.WithContext(c.UserContext()).Where("id = ?", userID).Take(&u).Error; err != nil {
		return helper.MapDBError(err, "user")
	}
	out, err := pc.build(c, u)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Profile fetched", out)
}

// GET /api/profiles/:handle
func (pc *ProfileController) GetByHandle(c *fiber.Ctx) error {
	u, err := repository.FindActiveByHandle(c.UserContext(), pc.DB, c.Params("handle"))
	if errors.Is(err, repository.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return helper.MapDBError(err, "user")
	}
	out, err := pc.build(c, *u)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Profile fetched", out)
}

// PUT /api/profiles/me
func (pc *ProfileController) UpdateMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	if req.AvatarURL != nil && *req.AvatarURL != "" {
		if err := helper.Validate.Var(*req.AvatarURL, "url"); err != nil {
			return helper.JsonValidationError(c, map[string][]string{"avatar_url": {"must be a valid URL"}})
		}
	}

	var u model.UserModel
	if err := pc.DB.WithContext(c.UserContext()).Where("id = ?", userID).Take(&u).Error; err != nil {
		return helper.MapDBError(err, "user")
	}
	if _, err := repository.FindProfile(c.UserContext(), pc.DB, u); err != nil {
		return helper.MapDBError(err, "profile")
	}
	if err := repository.UpdateProfile(c.UserContext(), pc.DB, userID, req.Changes()); err != nil {
		return helper.MapDBError(err, "profile")
	}

	out, err := pc.build(c, u)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Profile updated", out)
}

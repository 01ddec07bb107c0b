package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/users/user/model"
	userRepo "stogie_backend/internals/features/users/user/repository"
	"stogie_backend/internals/features/users/user_follows/dto"
	followModel "stogie_backend/internals/features/users/user_follows/model"
	helper "stogie_backend/internals/helpers"
)

type UserFollowController struct {
	DB  *gorm.DB
	Pub events.Publisher
}

func NewUserFollowController(db *gorm.DB, pub events.Publisher) *UserFollowController {
	if pub == nil {
		pub = events.Noop{}
	}
	return &UserFollowController{DB: db, Pub: pub}
}

func (fc *UserFollowController) target(c *fiber.Ctx) (*model.UserModel, error) {
	u, err := userRepo.FindActiveByHandle(c.UserContext(), fc.DB, c.Params("handle"))
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, helper.MapDBError(err, "user")
	}
	return u, nil
}

func (fc *UserFollowController) followerCount(c *fiber.Ctx, userID uuid.UUID) (int64, error) {
	var n int64
	err := fc.DB.WithContext(c.UserContext()).Model(&followModel.UserFollowModel{}).
		Where("user_follow_followee_id = ?", userID).Count(&n).Error
	return n, err
}

// POST /api/users/:handle/follow (idempotent)
func (fc *UserFollowController) Follow(c *fiber.Ctx) error {
	me, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	target, err := fc.target(c)
	if err != nil {
		return err
	}
	if target.ID == me {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot follow yourself")
	}

	res := fc.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&followModel.UserFollowModel{UserFollowFollowerID: me, UserFollowFolloweeID: target.ID})
	if res.Error != nil {
		return helper.MapDBError(res.Error, "follow")
	}
	if res.RowsAffected > 0 {
		fc.Pub.Publish(events.SubjectUserFollowed, events.Activity{ActorID: me, TargetID: &target.ID})
	}

	n, err := fc.followerCount(c, target.ID)
	if err != nil {
		return helper.MapDBError(err, "follow")
	}
	return helper.JsonOK(c, "Followed", dto.FollowStatusResponse{Following: true, FollowerCount: n})
}

// DELETE /api/users/:handle/follow (idempotent)
func (fc *UserFollowController) Unfollow(c *fiber.Ctx) error {
	me, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	target, err := fc.target(c)
	if err != nil {
		return err
	}

	if err := fc.DB.WithContext(c.UserContext()).
		Where("user_follow_follower_id = ? AND user_follow_followee_id = ?", me, target.ID).
		Delete(&followModel.UserFollowModel{}).Error; err != nil {
		return helper.MapDBError(err, "follow")
	}

	n, err := fc.followerCount(c, target.ID)
	if err != nil {
		return helper.MapDBError(err, "follow")
	}
	return helper.JsonOK(c, "Unfollowed", dto.FollowStatusResponse{Following: false, FollowerCount: n})
}

// GET /api/users/:handle/followers
func (fc *UserFollowController) Followers(c *fiber.Ctx) error {
	return fc.list(c, "user_follow_followee_id", "user_follow_follower_id")
}

// GET /api/users/:handle/following
func (fc *UserFollowController) Following(c *fiber.Ctx) error {
	return fc.list(c, "user_follow_follower_id", "user_follow_followee_id")
}

// list pages users joined through otherCol, for rows where matchCol is the target.
func (fc *UserFollowController) list(c *fiber.Ctx, matchCol, otherCol string) error {
	target, err := fc.target(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, helper.DefaultOpts)
	db := fc.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&followModel.UserFollowModel{}).
		Where(matchCol+" = ?", target.ID).Count(&total).Error; err != nil {
		return helper.MapDBError(err, "follow")
	}

	rows := []dto.FollowUserDTO{}
	if err := db.Table("user_follows f").
		Select(`u.id AS user_id, u.user_name, up.user_profile_display_name AS display_name,
			up.user_profile_avatar_url AS avatar_url, f.user_follow_created_at AS followed_at`).
		Joins("JOIN users u ON u.id = f."+otherCol).
		Joins("LEFT JOIN user_profiles up ON up.user_profile_user_id = u.id").
		Where("f."+matchCol+" = ?", target.ID).
		Order("f.user_follow_created_at DESC, u.id DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.MapDBError(err, "follow")
	}

	return helper.JsonList(c, "Users fetched", fiber.Map{"users": rows}, helper.BuildPagination(total, p, len(rows)))
}

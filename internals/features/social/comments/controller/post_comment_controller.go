package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/social/comments/dto"
	"stogie_backend/internals/features/social/comments/model"
	"stogie_backend/internals/features/social/comments/repository"
	postRepo "stogie_backend/internals/features/social/posts/repository"
	helper "stogie_backend/internals/helpers"
	"stogie_backend/internals/metrics"
)

type PostCommentController struct {
	DB    *gorm.DB
	Posts *postRepo.PostRepository
	Pub   events.Publisher
}

func NewPostCommentController(db *gorm.DB, pub events.Publisher) *PostCommentController {
	if pub == nil {
		pub = events.Noop{}
	}
	return &PostCommentController{DB: db, Posts: postRepo.NewPostRepository(db), Pub: pub}
}

// GET /api/posts/:id/comments
func (cc *PostCommentController) List(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := cc.Posts.FindActive(c.UserContext(), postID); err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return helper.MapDBError(err, "post")
	}

	p := helper.ResolvePaging(c, helper.DefaultOpts)
	rows, total, err := repository.ListByPost(c.UserContext(), cc.DB, postID, p.Limit(), p.Offset())
	if err != nil {
		return helper.MapDBError(err, "comment")
	}
	return helper.JsonList(c, "Comments fetched",
		fiber.Map{"comments": dto.ToCommentDTOs(rows)},
		helper.BuildPagination(total, p, len(rows)))
}

// POST /api/posts/:id/comments
func (cc *PostCommentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	if _, err := cc.Posts.FindActive(c.UserContext(), postID); err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return helper.MapDBError(err, "post")
	}

	m := model.PostCommentModel{
		PostCommentPostID: postID,
		PostCommentUserID: userID,
		PostCommentText:   req.Text,
	}
	if err := repository.Create(c.UserContext(), cc.DB, &m); err != nil {
		return helper.MapDBError(err, "comment")
	}
	metrics.CommentsCreated.Inc()
	cc.Pub.Publish(events.SubjectPostCommented, events.Activity{ActorID: userID, PostID: &postID, TargetID: &m.PostCommentID})

	row, err := repository.FindByID(c.UserContext(), cc.DB, m.PostCommentID)
	if err != nil {
		log.Printf("[ERROR] reload comment %s: %v", m.PostCommentID, err)
		return helper.MapDBError(err, "comment")
	}
	return helper.JsonCreated(c, "Comment added", fiber.Map{"comment": row.ToDTO()})
}

// DELETE /api/comments/:id
func (cc *PostCommentController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	commentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	row, err := repository.FindByID(c.UserContext(), cc.DB, commentID)
	if errors.Is(err, repository.ErrCommentNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Comment not found")
	}
	if err != nil {
		return helper.MapDBError(err, "comment")
	}
	if row.PostCommentUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Only the author can delete this comment")
	}

	if err := repository.SoftDelete(c.UserContext(), cc.DB, commentID); err != nil {
		return helper.MapDBError(err, "comment")
	}
	return helper.JsonDeleted(c, "Comment deleted", fiber.Map{"comment_id": commentID})
}

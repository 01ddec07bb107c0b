package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/social/posts/dto"
	"stogie_backend/internals/features/social/posts/repository"
	"stogie_backend/internals/features/social/posts/service"
	userRepo "stogie_backend/internals/features/users/user/repository"
	helper "stogie_backend/internals/helpers"
)

type PostController struct {
	DB  *gorm.DB
	Svc *service.PostService
}

func NewPostController(db *gorm.DB, pub events.Publisher) *PostController {
	return &PostController{DB: db, Svc: service.NewPostService(db, pub)}
}

func postError(err error) error {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrCigarNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Cigar not found")
	case errors.Is(err, service.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "Only the author can do this")
	default:
		return helper.MapDBError(err, "post")
	}
}

func (pc *PostController) feed(c *fiber.Ctx, q repository.FeedQuery, label string) error {
	p := helper.ResolvePaging(c, helper.FeedOpts)
	q.Limit, q.Offset = p.Limit(), p.Offset()

	items, hasMore, err := pc.Svc.FeedPage(c.UserContext(), q, label)
	if err != nil {
		return postError(err)
	}
	return helper.JsonList(c, "Feed fetched", fiber.Map{"posts": items}, helper.BuildWindowPagination(p, len(items), hasMore))
}

// GET /api/posts?filter=following
func (pc *PostController) GetFeed(c *fiber.Ctx) error {
	filter, ok := dto.ParseFeedFilter(c.Query("filter"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "filter must be omitted or 'following'")
	}

	viewer := helper.OptionalUserID(c)
	q := repository.FeedQuery{ViewerID: viewer}
	label := "all"
	if filter == dto.FilterFollowing {
		if viewer == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		q.Following = true
		label = "following"
	}
	return pc.feed(c, q, label)
}

// GET /api/users/:handle/posts
func (pc *PostController) GetUserPosts(c *fiber.Ctx) error {
	author, err := userRepo.FindActiveByHandle(c.UserContext(), pc.DB, c.Params("handle"))
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return helper.MapDBError(err, "user")
	}
	return pc.feed(c, repository.FeedQuery{ViewerID: helper.OptionalUserID(c), AuthorID: &author.ID}, "author")
}

// GET /api/posts/:id
func (pc *PostController) GetPost(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	item, err := pc.Svc.Get(c.UserContext(), postID, helper.OptionalUserID(c))
	if err != nil {
		return postError(err)
	}
	return helper.JsonOK(c, "Post fetched", fiber.Map{"post": item})
}

// POST /api/posts
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	item, err := pc.Svc.Create(c.UserContext(), userID, req)
	if err != nil {
		return postError(err)
	}
	return helper.JsonCreated(c, "Post created", fiber.Map{"post": item})
}

// DELETE /api/posts/:id
func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := pc.Svc.Delete(c.UserContext(), postID, userID); err != nil {
		return postError(err)
	}
	return helper.JsonDeleted(c, "Post deleted", fiber.Map{"post_id": postID})
}

// POST /api/posts/:id/like
// The caller is resolved before the id is even parsed so anonymous requests never reach storage.
func (pc *PostController) ToggleLike(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	res, err := pc.Svc.ToggleLike(c.UserContext(), postID, userID)
	if err != nil {
		return postError(err)
	}
	msg := "Post unliked"
	if res.Liked {
		msg = "Post liked"
	}
	return helper.JsonOK(c, msg, res)
}

// GET /api/posts/:id/likes
func (pc *PostController) GetLikes(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, helper.DefaultOpts)
	likers, total, err := pc.Svc.Likers(c.UserContext(), postID, p.Limit(), p.Offset())
	if err != nil {
		return postError(err)
	}
	return helper.JsonList(c, "Likes fetched", fiber.Map{"users": likers}, helper.BuildPagination(total, p, len(likers)))
}

package controller_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	commentModel "stogie_backend/internals/features/social/comments/model"
	"stogie_backend/internals/features/social/posts/dto"
	"stogie_backend/internals/features/social/posts/model"
	"stogie_backend/internals/features/social/posts/repository"
	postRoute "stogie_backend/internals/features/social/posts/route"
	userModel "stogie_backend/internals/features/users/user/model"
	followModel "stogie_backend/internals/features/users/user_follows/model"
	authMiddleware "stogie_backend/internals/middlewares/auth"
	"stogie_backend/internals/testutil"
)

type feedData struct {
	Posts []dto.FeedItem `json:"posts"`
}

func setup(t *testing.T) (*fiber.App, *gorm.DB, *events.Recorder) {
	t.Helper()
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	rec := &events.Recorder{}

	postRoute.PostRoutes(app.Group("/api"),
		authMiddleware.AuthMiddleware(db, testutil.Secret),
		authMiddleware.SecondAuthMiddleware(db, testutil.Secret),
		db, rec)
	return app, db, rec
}

func createPost(t *testing.T, db *gorm.DB, author userModel.UserModel, at time.Time) model.PostModel {
	t.Helper()
	p := model.PostModel{
		PostAuthorID:  author.ID,
		PostImageURL:  "https://img.example.com/" + uuid.NewString() + ".webp",
		PostCaption:   "evening smoke",
		PostCreatedAt: at.UTC(),
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func getFeed(t *testing.T, app *fiber.App, path, token string) (int, feedData, testutil.Envelope) {
	t.Helper()
	status, env := testutil.Do(t, app, fiber.MethodGet, path, token, nil)
	var data feedData
	if status == fiber.StatusOK {
		testutil.DataAs(t, env, &data)
	}
	return status, data, env
}

func TestFeed_EmptyTableReturnsEmptyList(t *testing.T) {
	app, _, _ := setup(t)

	status, data, env := getFeed(t, app, "/api/posts", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, data.Posts)
	require.Empty(t, data.Posts)
	require.JSONEq(t, `{"posts":[]}`, string(env.Data))
	require.False(t, env.Pagination.HasNext)
}

func TestFeed_LikeCountEqualsDistinctLikers(t *testing.T) {
	app, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	post := createPost(t, db, author, time.Now())

	likers := make([]userModel.UserModel, 5)
	for i := range likers {
		likers[i] = testutil.CreateUser(t, db, fmt.Sprintf("liker_%d", i))
		status, _ := testutil.Do(t, app, fiber.MethodPost, "/api/posts/"+post.PostID.String()+"/like", testutil.Token(t, likers[i]), nil)
		require.Equal(t, fiber.StatusOK, status)
	}

	_, anon, _ := getFeed(t, app, "/api/posts", "")
	require.Len(t, anon.Posts, 1)
	require.EqualValues(t, 5, anon.Posts[0].LikeCount)
	require.False(t, anon.Posts[0].LikedByMe)
	require.Equal(t, "author", anon.Posts[0].Author.UserName)

	_, mine, _ := getFeed(t, app, "/api/posts", testutil.Token(t, likers[2]))
	require.True(t, mine.Posts[0].LikedByMe)

	_, authors, _ := getFeed(t, app, "/api/posts", testutil.Token(t, author))
	require.False(t, authors.Posts[0].LikedByMe)
	require.EqualValues(t, 5, authors.Posts[0].LikeCount)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	app, db, rec := setup(t)
	author := testutil.CreateUser(t, db, "author")
	viewer := testutil.CreateUser(t, db, "viewer")
	post := createPost(t, db, author, time.Now())
	path := "/api/posts/" + post.PostID.String() + "/like"
	token := testutil.Token(t, viewer)

	var res dto.ToggleLikeResponse
	status, env := testutil.Do(t, app, fiber.MethodPost, path, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &res)
	require.Equal(t, dto.ToggleLikeResponse{Liked: true, LikeCount: 1}, res)

	status, env = testutil.Do(t, app, fiber.MethodPost, path, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &res)
	require.Equal(t, dto.ToggleLikeResponse{Liked: false, LikeCount: 0}, res)

	var rows int64
	require.NoError(t, db.Model(&model.PostLikeModel{}).Count(&rows).Error)
	require.Zero(t, rows)
	require.Equal(t, []string{events.SubjectPostLiked, events.SubjectPostUnliked}, rec.Subjects())
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	app, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	post := createPost(t, db, author, time.Now())

	status, env := testutil.Do(t, app, fiber.MethodPost, "/api/posts/"+post.PostID.String()+"/like", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.False(t, env.Success)

	var rows int64
	require.NoError(t, db.Model(&model.PostLikeModel{}).Count(&rows).Error)
	require.Zero(t, rows)
}

func TestToggleLike_UnknownOrMalformedPost(t *testing.T) {
	app, db, _ := setup(t)
	token := testutil.Token(t, testutil.CreateUser(t, db, "viewer"))

	status, env := testutil.Do(t, app, fiber.MethodPost, "/api/posts/"+uuid.NewString()+"/like", token, nil)
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", env.ErrorCode)

	status, _ = testutil.Do(t, app, fiber.MethodPost, "/api/posts/not-a-uuid/like", token, nil)
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestToggleLike_ConcurrentSameUserLeavesAtMostOneRow(t *testing.T) {
	_, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	viewer := testutil.CreateUser(t, db, "viewer")
	post := createPost(t, db, author, time.Now())
	repo := repository.NewPostRepository(db)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.ToggleLike(context.Background(), post.PostID, viewer.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := repo.CountLikes(context.Background(), post.PostID)
	require.NoError(t, err)
	require.LessOrEqual(t, n, int64(1))
}

// A second request from the same user inserts its row after this toggle's DELETE found
// nothing; the INSERT must then be a silent no-op.
func TestToggleLike_LosingConcurrentInsertIsNoOp(t *testing.T) {
	_, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	viewer := testutil.CreateUser(t, db, "viewer")
	post := createPost(t, db, author, time.Now())

	raced := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:concurrent_like", func(tx *gorm.DB) {
		if raced || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "post_likes" {
			return
		}
		raced = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO post_likes (post_like_post_id, post_like_user_id, post_like_created_at) VALUES (?, ?, ?)",
			post.PostID, viewer.ID, time.Now().UTC())
		require.NoError(t, err)
	}))

	liked, count, err := repository.NewPostRepository(db).ToggleLike(context.Background(), post.PostID, viewer.ID)
	require.NoError(t, err)
	require.True(t, raced)
	require.True(t, liked)
	require.EqualValues(t, 1, count)

	var rows int64
	require.NoError(t, db.Model(&model.PostLikeModel{}).
		Where("post_like_post_id = ? AND post_like_user_id = ?", post.PostID, viewer.ID).
		Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}

func TestFeed_CommentCountExcludesDeleted(t *testing.T) {
	app, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	post := createPost(t, db, author, time.Now())

	now := time.Now().UTC()
	for i, deleted := range []bool{false, false, true} {
		c := commentModel.PostCommentModel{
			PostCommentPostID: post.PostID,
			PostCommentUserID: author.ID,
			PostCommentText:   fmt.Sprintf("comment %d", i),
		}
		if deleted {
			c.PostCommentDeletedAt = &now
		}
		require.NoError(t, db.Create(&c).Error)
	}

	_, data, _ := getFeed(t, app, "/api/posts", "")
	require.Len(t, data.Posts, 1)
	require.EqualValues(t, 2, data.Posts[0].CommentCount)
	require.Zero(t, data.Posts[0].LikeCount)
}

func TestFeed_NewestFirstWithPaging(t *testing.T) {
	app, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	oldest := createPost(t, db, author, base)
	middle := createPost(t, db, author, base.Add(time.Minute))
	newest := createPost(t, db, author, base.Add(2*time.Minute))

	_, page1, env := getFeed(t, app, "/api/posts?per_page=2", "")
	require.Len(t, page1.Posts, 2)
	require.Equal(t, newest.PostID, page1.Posts[0].PostID)
	require.Equal(t, middle.PostID, page1.Posts[1].PostID)
	require.True(t, env.Pagination.HasNext)

	_, page2, env := getFeed(t, app, "/api/posts?per_page=2&page=2", "")
	require.Len(t, page2.Posts, 1)
	require.Equal(t, oldest.PostID, page2.Posts[0].PostID)
	require.False(t, env.Pagination.HasNext)

	_, _, env = getFeed(t, app, "/api/posts?per_page=500", "")
	require.Equal(t, 50, env.Pagination.PerPage)
}

func TestFeed_FollowingFilter(t *testing.T) {
	app, db, _ := setup(t)
	viewer := testutil.CreateUser(t, db, "viewer")
	followed := testutil.CreateUser(t, db, "followed")
	stranger := testutil.CreateUser(t, db, "stranger")
	mine := createPost(t, db, followed, time.Now())
	createPost(t, db, stranger, time.Now())
	require.NoError(t, db.Create(&followModel.UserFollowModel{
		UserFollowFollowerID: viewer.ID,
		UserFollowFolloweeID: followed.ID,
	}).Error)

	status, _, _ := getFeed(t, app, "/api/posts?filter=following", "")
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, data, _ := getFeed(t, app, "/api/posts?filter=following", testutil.Token(t, viewer))
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, data.Posts, 1)
	require.Equal(t, mine.PostID, data.Posts[0].PostID)

	status, _, _ = getFeed(t, app, "/api/posts?filter=trending", "")
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestFeed_UserPosts(t *testing.T) {
	app, db, _ := setup(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	createPost(t, db, alice, time.Now())
	createPost(t, db, bob, time.Now())

	status, data, _ := getFeed(t, app, "/api/users/alice/posts", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, data.Posts, 1)
	require.Equal(t, alice.ID, data.Posts[0].PostAuthorID)

	status, _, _ = getFeed(t, app, "/api/users/nobody/posts", "")
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestPost_CreateGetDelete(t *testing.T) {
	app, db, rec := setup(t)
	author := testutil.CreateUser(t, db, "author")
	other := testutil.CreateUser(t, db, "other")
	token := testutil.Token(t, author)

	status, env := testutil.Do(t, app, fiber.MethodPost, "/api/posts", token, fiber.Map{"caption": "no image"})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, env.Errors, "image_url")

	status, env = testutil.Do(t, app, fiber.MethodPost, "/api/posts", token, fiber.Map{
		"image_url": "https://img.example.com/a.webp",
		"caption":   "  Padron 1964  ",
	})
	require.Equal(t, fiber.StatusCreated, status)
	var created struct {
		Post dto.FeedItem `json:"post"`
	}
	testutil.DataAs(t, env, &created)
	require.Equal(t, "Padron 1964", created.Post.PostCaption)
	require.Zero(t, created.Post.LikeCount)
	require.Zero(t, created.Post.CommentCount)
	require.Contains(t, rec.Subjects(), events.SubjectPostCreated)

	path := "/api/posts/" + created.Post.PostID.String()
	status, _ = testutil.Do(t, app, fiber.MethodGet, path, "", nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = testutil.Do(t, app, fiber.MethodDelete, path, testutil.Token(t, other), nil)
	require.Equal(t, fiber.StatusForbidden, status)

	status, _ = testutil.Do(t, app, fiber.MethodDelete, path, token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = testutil.Do(t, app, fiber.MethodGet, path, "", nil)
	require.Equal(t, fiber.StatusNotFound, status)
	status, _ = testutil.Do(t, app, fiber.MethodPost, path+"/like", token, nil)
	require.Equal(t, fiber.StatusNotFound, status)

	_, data, _ := getFeed(t, app, "/api/posts", "")
	require.Empty(t, data.Posts)
}

func TestPost_CreateWithCigar(t *testing.T) {
	app, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	token := testutil.Token(t, author)
	cigar := testutil.CreateCigar(t, db, "Padron", "1964 Anniversary Maduro", "full")

	status, env := testutil.Do(t, app, fiber.MethodPost, "/api/posts", token, fiber.Map{
		"image_url": "https://img.example.com/a.webp",
		"cigar_id":  uuid.NewString(),
	})
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "Cigar not found", env.Message)

	var n int64
	require.NoError(t, db.Model(&model.PostModel{}).Count(&n).Error)
	require.Zero(t, n)

	status, env = testutil.Do(t, app, fiber.MethodPost, "/api/posts", token, fiber.Map{
		"image_url": "https://img.example.com/b.webp",
		"cigar_id":  cigar.CigarID.String(),
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var created struct {
		Post dto.FeedItem `json:"post"`
	}
	testutil.DataAs(t, env, &created)
	require.NotNil(t, created.Post.PostCigarID)
	require.Equal(t, cigar.CigarID, *created.Post.PostCigarID)
}

func TestPost_Likers(t *testing.T) {
	app, db, _ := setup(t)
	author := testutil.CreateUser(t, db, "author")
	fan := testutil.CreateUser(t, db, "fan")
	post := createPost(t, db, author, time.Now())

	status, _ := testutil.Do(t, app, fiber.MethodPost, "/api/posts/"+post.PostID.String()+"/like", testutil.Token(t, fan), nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env := testutil.Do(t, app, fiber.MethodGet, "/api/posts/"+post.PostID.String()+"/likes", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var data struct {
		Users []dto.LikerDTO `json:"users"`
	}
	testutil.DataAs(t, env, &data)
	require.Len(t, data.Users, 1)
	require.Equal(t, "fan", data.Users[0].UserName)
	require.EqualValues(t, 1, env.Pagination.Total)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/social/posts/dto"
	"stogie_backend/internals/features/social/posts/model"
	"stogie_backend/internals/features/social/posts/repository"
	"stogie_backend/internals/metrics"
)

var (
	ErrPostNotFound  = repository.ErrPostNotFound
	ErrCigarNotFound = repository.ErrCigarNotFound
	ErrForbidden     = errors.New("only the author may do this")
)

type PostService struct {
	Repo *repository.PostRepository
	Pub  events.Publisher
}

func NewPostService(db *gorm.DB, pub events.Publisher) *PostService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &PostService{Repo: repository.NewPostRepository(db), Pub: pub}
}

// FeedPage returns up to limit items and whether more exist past them.
func (s *PostService) FeedPage(ctx context.Context, q repository.FeedQuery, filterLabel string) ([]dto.FeedItem, bool, error) {
	limit := q.Limit
	q.Limit = limit + 1

	start := time.Now()
	rows, err := s.Repo.Feed(ctx, q)
	metrics.FeedQueryDuration.WithLabelValues(filterLabel).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, false, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	return dto.ToFeedItems(rows), hasMore, nil
}

// Get returns one post in feed projection.
func (s *PostService) Get(ctx context.Context, postID uuid.UUID, viewer *uuid.UUID) (*dto.FeedItem, error) {
	rows, err := s.Repo.Feed(ctx, repository.FeedQuery{ViewerID: viewer, PostID: &postID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrPostNotFound
	}
	item := rows[0].ToFeedItem()
	return &item, nil
}

func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, req dto.CreatePostRequest) (*dto.FeedItem, error) {
	if req.CigarID != nil {
		ok, err := s.Repo.CigarExists(ctx, *req.CigarID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCigarNotFound
		}
	}
	m := model.PostModel{
		PostAuthorID: authorID,
		PostImageURL: req.ImageURL,
		PostCaption:  req.Caption,
		PostCigarID:  req.CigarID,
	}
	if err := s.Repo.Create(ctx, &m); err != nil {
		return nil, err
	}

	s.Pub.Publish(events.SubjectPostCreated, events.Activity{ActorID: authorID, PostID: &m.PostID})
	return s.Get(ctx, m.PostID, &authorID)
}

// Delete soft-deletes the post; only its author may.
func (s *PostService) Delete(ctx context.Context, postID, userID uuid.UUID) error {
	post, err := s.Repo.FindActive(ctx, postID)
	if err != nil {
		return err
	}
	if post.PostAuthorID != userID {
		return ErrForbidden
	}
	return s.Repo.SoftDelete(ctx, postID)
}

func (s *PostService) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (dto.ToggleLikeResponse, error) {
	liked, count, err := s.Repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		if !errors.Is(err, ErrPostNotFound) {
			metrics.LikeToggles.WithLabelValues("error").Inc()
		}
		return dto.ToggleLikeResponse{}, err
	}

	subject, result := events.SubjectPostUnliked, "unliked"
	if liked {
		subject, result = events.SubjectPostLiked, "liked"
	}
	metrics.LikeToggles.WithLabelValues(result).Inc()
	s.Pub.Publish(subject, events.Activity{ActorID: userID, PostID: &postID, Count: &count})

	return dto.ToggleLikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *PostService) Likers(ctx context.Context, postID uuid.UUID, limit, offset int) ([]dto.LikerDTO, int64, error) {
	if _, err := s.Repo.FindActive(ctx, postID); err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountLikes(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Repo.Likers(ctx, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToLikerDTOs(rows), total, nil
}

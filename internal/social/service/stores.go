package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/logging"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// UserStore is the persistence needed by the user operations.
// repository.UserRepository is the Neo4j implementation.
type UserStore interface {
	List(ctx context.Context, page domain.Page) ([]domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID string) error
	ListFriends(ctx context.Context, userID string) ([]domain.UserRef, error)
	AddFriend(ctx context.Context, userID, friendID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	MutualFriends(ctx context.Context, userID, otherID string) ([]string, error)
}

type PostStore interface {
	List(ctx context.Context, page domain.Page) ([]domain.Post, error)
	GetByID(ctx context.Context, postID string) (*domain.Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]domain.Post, error)
	Create(ctx context.Context, authorID string, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	// Delete removes the post and its comments, returning the deleted comment IDs.
	Delete(ctx context.Context, postID string) ([]string, error)
	Like(ctx context.Context, userID, postID string) error
	Unlike(ctx context.Context, userID, postID string) error
	ListLikers(ctx context.Context, postID string) ([]domain.UserRef, error)
}

type CommentStore interface {
	List(ctx context.Context, page domain.Page) ([]domain.Comment, error)
	GetByID(ctx context.Context, commentID string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	Create(ctx context.Context, authorID, postID string, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, commentID string) error
	BelongsToPost(ctx context.Context, postID, commentID string) (bool, error)
	Like(ctx context.Context, userID, commentID string) error
	Unlike(ctx context.Context, userID, commentID string) error
	ListLikers(ctx context.Context, commentID string) ([]domain.UserRef, error)
}

// clock and ID source, replaced in tests.
type basics struct {
	cache cache.Cache
	now   func() time.Time
	newID func() string
}

func newBasics(c cache.Cache) basics {
	if c == nil {
		c = cache.Noop{}
	}
	return basics{cache: c, now: time.Now, newID: uuid.NewString}
}

// cached serves key from the cache, falling back to load and filling the
// cache on a miss. Cache failures only degrade to a direct load.
func cached[T any](ctx context.Context, c cache.Cache, key string, load func() (*T, error)) (*T, error) {
	var hit T
	found, err := c.Get(ctx, key, &hit)
	if err != nil {
		logging.FromContext(ctx).Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return &hit, nil
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, v); err != nil {
		logging.FromContext(ctx).Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func invalidate(ctx context.Context, c cache.Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logging.FromContext(ctx).Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// optional reads a supplied field. Absent fields report ok=false; supplied
// blank fields are rejected like missing required ones.
func optional(field string, v *string) (string, bool, error) {
	if v == nil {
		return "", false, nil
	}
	s, err := domain.Required(field, v)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

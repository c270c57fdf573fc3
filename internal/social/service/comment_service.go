package service

import (
	"context"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// CommentService handles business logic for comments, both standalone and
// through their post.
type CommentService struct {
	basics
	comments CommentStore
	posts    PostStore
	users    UserStore
}

// NewCommentService creates a new CommentService. A nil cache disables caching.
func NewCommentService(comments CommentStore, posts PostStore, users UserStore, c cache.Cache) *CommentService {
	return &CommentService{basics: newBasics(c), comments: comments, posts: posts, users: users}
}

func (s *CommentService) ListComments(ctx context.Context, page domain.Page) ([]domain.Comment, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return s.comments.List(ctx, page)
}

func (s *CommentService) GetComment(ctx context.Context, commentID string) (*domain.Comment, error) {
	return cached(ctx, s.cache, cache.CommentKey(commentID), func() (*domain.Comment, error) {
		return s.comments.GetByID(ctx, commentID)
	})
}

func (s *CommentService) UpdateComment(ctx context.Context, commentID string, req *domain.UpdateCommentRequest) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	content, ok, err := optional("content", req.Content)
	if err != nil {
		return nil, err
	}
	if ok {
		comment.Content = content
	}

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, cache.CommentKey(commentID))
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID string) error {
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	invalidate(ctx, s.cache, cache.CommentKey(commentID))
	return nil
}

func (s *CommentService) ListPostComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// CreateComment checks user_id, the user, content and the post, in that order.
func (s *CommentService) CreateComment(ctx context.Context, postID string, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	userID, err := domain.Required("user_id", req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	content, err := domain.Required("content", req.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		CommentID: s.newID(),
		Content:   content,
		CreatedAt: domain.Timestamp(s.now()),
	}
	if err := s.comments.Create(ctx, userID, postID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeletePostComment deletes commentID only if it hangs off postID.
func (s *CommentService) DeletePostComment(ctx context.Context, postID, commentID string) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return err
	}
	ok, err := s.comments.BelongsToPost(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCommentNotInPost
	}
	return s.DeleteComment(ctx, commentID)
}

func (s *CommentService) LikeComment(ctx context.Context, commentID string, userID *string) (string, error) {
	id, err := s.likeCheck(ctx, commentID, userID)
	if err != nil {
		return "", err
	}
	if err := s.comments.Like(ctx, id, commentID); err != nil {
		return "", err
	}
	return id, nil
}

func (s *CommentService) UnlikeComment(ctx context.Context, commentID string, userID *string) (string, error) {
	id, err := s.likeCheck(ctx, commentID, userID)
	if err != nil {
		return "", err
	}
	if err := s.comments.Unlike(ctx, id, commentID); err != nil {
		return "", err
	}
	return id, nil
}

func (s *CommentService) ListLikers(ctx context.Context, commentID string) ([]domain.UserRef, error) {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.comments.ListLikers(ctx, commentID)
}

func (s *CommentService) likeCheck(ctx context.Context, commentID string, userID *string) (string, error) {
	id, err := domain.Required("user_id", userID)
	if err != nil {
		return "", err
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return "", err
	}
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return "", err
	}
	return id, nil
}

package service

import (
	"context"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// PostService handles business logic for posts and post likes
type PostService struct {
	basics
	posts PostStore
	users UserStore
}

// NewPostService creates a new PostService. A nil cache disables caching.
func NewPostService(posts PostStore, users UserStore, c cache.Cache) *PostService {
	return &PostService{basics: newBasics(c), posts: posts, users: users}
}

func (s *PostService) ListPosts(ctx context.Context, page domain.Page) ([]domain.Post, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return s.posts.List(ctx, page)
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	return cached(ctx, s.cache, cache.PostKey(postID), func() (*domain.Post, error) {
		return s.posts.GetByID(ctx, postID)
	})
}

// ListUserPosts returns the posts created by userID.
func (s *PostService) ListUserPosts(ctx context.Context, userID string) ([]domain.Post, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, userID)
}

// CreatePost checks the author, then title, then content.
func (s *PostService) CreatePost(ctx context.Context, userID string, req *domain.CreatePostRequest) (*domain.Post, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	title, err := domain.Required("title", req.Title)
	if err != nil {
		return nil, err
	}
	content, err := domain.Required("content", req.Content)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		PostID:    s.newID(),
		Title:     title,
		Content:   content,
		CreatedAt: domain.Timestamp(s.now()),
	}
	if err := s.posts.Create(ctx, userID, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, postID string, req *domain.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	title, ok, err := optional("title", req.Title)
	if err != nil {
		return nil, err
	}
	if ok {
		post.Title = title
	}
	content, ok, err := optional("content", req.Content)
	if err != nil {
		return nil, err
	}
	if ok {
		post.Content = content
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, cache.PostKey(postID))
	return post, nil
}

// DeletePost removes the post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	commentIDs, err := s.posts.Delete(ctx, postID)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(commentIDs)+1)
	keys = append(keys, cache.PostKey(postID))
	for _, id := range commentIDs {
		keys = append(keys, cache.CommentKey(id))
	}
	invalidate(ctx, s.cache, keys...)
	return nil
}

// LikePost records that the user in the body likes the post and returns that
// user's ID.
func (s *PostService) LikePost(ctx context.Context, postID string, userID *string) (string, error) {
	id, err := s.likeCheck(ctx, postID, userID)
	if err != nil {
		return "", err
	}
	if err := s.posts.Like(ctx, id, postID); err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostService) UnlikePost(ctx context.Context, postID string, userID *string) (string, error) {
	id, err := s.likeCheck(ctx, postID, userID)
	if err != nil {
		return "", err
	}
	if err := s.posts.Unlike(ctx, id, postID); err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostService) ListLikers(ctx context.Context, postID string) ([]domain.UserRef, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListLikers(ctx, postID)
}

// likeCheck validates user_id, the user and the post, in that order.
func (s *PostService) likeCheck(ctx context.Context, postID string, userID *string) (string, error) {
	id, err := domain.Required("user_id", userID)
	if err != nil {
		return "", err
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return "", err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return "", err
	}
	return id, nil
}

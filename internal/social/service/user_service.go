package service

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// UserService handles business logic for users and friendships
type UserService struct {
	basics
	users UserStore
}

// NewUserService creates a new UserService. A nil cache disables caching.
func NewUserService(users UserStore, c cache.Cache) *UserService {
	return &UserService{basics: newBasics(c), users: users}
}

func (s *UserService) ListUsers(ctx context.Context, page domain.Page) ([]domain.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return s.users.List(ctx, page)
}

// GetUser retrieves a user by ID, served from the cache when possible.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return cached(ctx, s.cache, cache.UserKey(userID), func() (*domain.User, error) {
		return s.users.GetByID(ctx, userID)
	})
}

// CreateUser validates name then email and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	name, err := domain.Required("name", req.Name)
	if err != nil {
		return nil, err
	}
	email, err := domain.Required("email", req.Email)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserID:    s.newID(),
		Name:      name,
		Email:     email,
		CreatedAt: domain.Timestamp(s.now()),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser changes only the supplied fields.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name, ok, err := optional("name", req.Name)
	if err != nil {
		return nil, err
	}
	if ok {
		user.Name = name
	}
	email, ok, err := optional("email", req.Email)
	if err != nil {
		return nil, err
	}
	if ok {
		user.Email = email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, cache.UserKey(userID))
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	invalidate(ctx, s.cache, cache.UserKey(userID))
	return nil
}

func (s *UserService) ListFriends(ctx context.Context, userID string) (*domain.Friends, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := s.users.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Friends{UserID: userID, Friends: friends}, nil
}

// AddFriend links both users in both directions. Checks run in order: user,
// friend_id, friend.
func (s *UserService) AddFriend(ctx context.Context, userID string, friendID *string) (string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", err
	}
	id, err := domain.Required("friend_id", friendID)
	if err != nil {
		return "", err
	}
	if err := s.requireOther(ctx, id, domain.ErrFriendNotFound); err != nil {
		return "", err
	}

	if err := s.users.AddFriend(ctx, userID, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.requireOther(ctx, friendID, domain.ErrFriendNotFound); err != nil {
		return err
	}
	return s.users.RemoveFriend(ctx, userID, friendID)
}

func (s *UserService) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, err
	}
	if err := s.requireOther(ctx, friendID, domain.ErrFriendNotFound); err != nil {
		return false, err
	}
	return s.users.AreFriends(ctx, userID, friendID)
}

func (s *UserService) MutualFriends(ctx context.Context, userID, otherID string) ([]string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireOther(ctx, otherID, domain.ErrOtherUserNotFound); err != nil {
		return nil, err
	}
	return s.users.MutualFriends(ctx, userID, otherID)
}

// requireOther checks that a second user exists, reporting notFound instead
// of ErrUserNotFound.
func (s *UserService) requireOther(ctx context.Context, userID string, notFound error) error {
	_, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return notFound
	}
	return err
}

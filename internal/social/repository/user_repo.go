package repository

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// UserRepository handles Neo4j operations for User nodes and FRIENDS_WITH
// relationships.
type UserRepository struct {
	db graphdb.Runner
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db graphdb.Runner) *UserRepository {
	return &UserRepository{db: db}
}

// List returns users ordered by creation time.
func (r *UserRepository) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	params := map[string]any{}
	query := `
		MATCH (u:User)
		RETURN u
		ORDER BY u.created_at, u.user_id` + pageClause(page, params)

	records, err := r.db.Read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		if u, ok := userFromRecord(rec); ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// GetByID retrieves a user by its ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	records, err := r.db.Read(ctx, `
		MATCH (u:User {user_id: $user_id})
		RETURN u
		LIMIT 1
	`, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrUserNotFound
	}

	u, ok := userFromRecord(records[0])
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// Create creates a new user node
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Write(ctx, `
		CREATE (u:User {user_id: $user_id, name: $name, email: $email, created_at: $created_at})
		RETURN u
	`, map[string]any{
		"user_id":    user.UserID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update overwrites name and email of an existing user
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	records, err := r.db.Write(ctx, `
		MATCH (u:User {user_id: $user_id})
		SET u.name = $name, u.email = $email
		RETURN u
	`, map[string]any{
		"user_id": user.UserID,
		"name":    user.Name,
		"email":   user.Email,
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user together with all of its relationships.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	records, err := r.db.Write(ctx, `
		MATCH (u:User {user_id: $user_id})
		WITH u, u.user_id AS user_id
		DETACH DELETE u
		RETURN user_id
	`, map[string]any{"user_id": userID})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListFriends returns the users userID is friends with.
func (r *UserRepository) ListFriends(ctx context.Context, userID string) ([]domain.UserRef, error) {
	records, err := r.db.Read(ctx, `
		MATCH (:User {user_id: $user_id})-[:FRIENDS_WITH]->(f:User)
		RETURN DISTINCT f.user_id AS user_id, f.name AS name
		ORDER BY name, user_id
	`, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return userRefsFromRecords(records), nil
}

// AddFriend links both users in both directions. Existing links are kept.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	records, err := r.db.Write(ctx, `
		MATCH (u:User {user_id: $user_id}), (f:User {user_id: $friend_id})
		MERGE (u)-[:FRIENDS_WITH]->(f)
		MERGE (f)-[:FRIENDS_WITH]->(u)
		RETURN u.user_id AS user_id
	`, map[string]any{"user_id": userID, "friend_id": friendID})
	if err != nil {
		return fmt.Errorf("add friend: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RemoveFriend deletes the friendship in both directions.
func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID string) error {
	_, err := r.db.Write(ctx, `
		MATCH (:User {user_id: $user_id})-[r:FRIENDS_WITH]-(:User {user_id: $friend_id})
		DELETE r
	`, map[string]any{"user_id": userID, "friend_id": friendID})
	if err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}
	return nil
}

func (r *UserRepository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	records, err := r.db.Read(ctx, `
		OPTIONAL MATCH (:User {user_id: $user_id})-[r:FRIENDS_WITH]->(:User {user_id: $friend_id})
		RETURN r IS NOT NULL AS friends
		LIMIT 1
	`, map[string]any{"user_id": userID, "friend_id": friendID})
	if err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	if len(records) == 0 {
		return false, nil
	}
	return graphdb.BoolValue(records[0], "friends"), nil
}

// MutualFriends returns the IDs of users both userID and otherID are friends with.
func (r *UserRepository) MutualFriends(ctx context.Context, userID, otherID string) ([]string, error) {
	records, err := r.db.Read(ctx, `
		MATCH (:User {user_id: $user_id})-[:FRIENDS_WITH]->(m:User)<-[:FRIENDS_WITH]-(:User {user_id: $other_id})
		RETURN DISTINCT m.user_id AS user_id
		ORDER BY user_id
	`, map[string]any{"user_id": userID, "other_id": otherID})
	if err != nil {
		return nil, fmt.Errorf("mutual friends: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, graphdb.StringValue(rec, "user_id"))
	}
	return ids, nil
}

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// setupTestGraph connects to a live Neo4j.
// Skips test if TEST_NEO4J_URI is not set. Credentials come from
// TEST_NEO4J_USER and TEST_NEO4J_PASSWORD.
func setupTestGraph(t *testing.T) *graphdb.Client {
	t.Helper()
	uri := os.Getenv("TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("TEST_NEO4J_URI not set, skipping Neo4j integration test")
	}

	ctx := context.Background()
	client, err := graphdb.Open(ctx, graphdb.Options{
		URI:      uri,
		User:     os.Getenv("TEST_NEO4J_USER"),
		Password: os.Getenv("TEST_NEO4J_PASSWORD"),
		Database: os.Getenv("TEST_NEO4J_DATABASE"),
	})
	require.NoError(t, err)
	require.NoError(t, graphdb.EnsureSchema(ctx, client))
	t.Cleanup(func() { _ = client.Close(context.Background()) })
	return client
}

func newTestUser(t *testing.T, ctx context.Context, repo *UserRepository, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		UserID:    uuid.NewString(),
		Name:      name,
		Email:     name + "@example.com",
		CreatedAt: float64(time.Now().UnixNano()) / 1e9,
	}
	require.NoError(t, repo.Create(ctx, u))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), u.UserID) })
	return u
}

func TestIntegration_Friendships(t *testing.T) {
	client := setupTestGraph(t)
	ctx := context.Background()
	users := NewUserRepository(client)

	ada := newTestUser(t, ctx, users, "ada")
	bob := newTestUser(t, ctx, users, "bob")
	cy := newTestUser(t, ctx, users, "cy")

	require.NoError(t, users.AddFriend(ctx, ada.UserID, bob.UserID))
	require.NoError(t, users.AddFriend(ctx, ada.UserID, bob.UserID))
	require.NoError(t, users.AddFriend(ctx, cy.UserID, bob.UserID))

	friends, err := users.ListFriends(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Len(t, friends, 2)

	ok, err := users.AreFriends(ctx, bob.UserID, ada.UserID)
	require.NoError(t, err)
	assert.True(t, ok)

	mutual, err := users.MutualFriends(ctx, ada.UserID, cy.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.UserID}, mutual)

	require.NoError(t, users.RemoveFriend(ctx, bob.UserID, ada.UserID))
	ok, err = users.AreFriends(ctx, ada.UserID, bob.UserID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = users.AddFriend(ctx, ada.UserID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestIntegration_PostLifecycle(t *testing.T) {
	client := setupTestGraph(t)
	ctx := context.Background()
	users := NewUserRepository(client)
	posts := NewPostRepository(client)
	comments := NewCommentRepository(client)

	author := newTestUser(t, ctx, users, "author")
	fan := newTestUser(t, ctx, users, "fan")

	post := &domain.Post{PostID: uuid.NewString(), Title: "Hello", Content: "World", CreatedAt: 1}
	require.NoError(t, posts.Create(ctx, author.UserID, post))

	got, err := posts.GetByID(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, author.UserID, got.AuthorID)

	require.NoError(t, posts.Like(ctx, fan.UserID, post.PostID))
	require.NoError(t, posts.Like(ctx, fan.UserID, post.PostID))
	likers, err := posts.ListLikers(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserRef{{UserID: fan.UserID, Name: fan.Name}}, likers)

	comment := &domain.Comment{CommentID: uuid.NewString(), Content: "nice", CreatedAt: 2}
	require.NoError(t, comments.Create(ctx, fan.UserID, post.PostID, comment))

	belongs, err := comments.BelongsToPost(ctx, post.PostID, comment.CommentID)
	require.NoError(t, err)
	assert.True(t, belongs)

	deleted, err := posts.Delete(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, []string{comment.CommentID}, deleted)

	_, err = comments.GetByID(ctx, comment.CommentID)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	_, err = posts.GetByID(ctx, post.PostID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

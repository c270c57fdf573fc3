package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/socialtest"
)

func commentFixture(t *testing.T) (*socialtest.Graph, *CommentService) {
	t.Helper()
	g := socialtest.NewGraph()
	seedUsers(g, "u1")
	g.SeedPost(domain.Post{PostID: "p1", Title: "t", Content: "c", AuthorID: "u1"})
	g.SeedPost(domain.Post{PostID: "p2", Title: "t2", Content: "c2", AuthorID: "u1"})
	return g, NewCommentService(g.Comments, g.Posts, g.Users, nil)
}

func TestCommentService_CreateCommentCheckOrder(t *testing.T) {
	ctx := context.Background()
	_, svc := commentFixture(t)
	fixed(&svc.basics, "c-1")

	var verr *domain.ValidationError
	_, err := svc.CreateComment(ctx, "nope", &domain.CreateCommentRequest{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user_id", verr.Field)

	_, err = svc.CreateComment(ctx, "nope", &domain.CreateCommentRequest{UserID: str("ghost")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.CreateComment(ctx, "nope", &domain.CreateCommentRequest{UserID: str("u1")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)

	_, err = svc.CreateComment(ctx, "nope", &domain.CreateCommentRequest{UserID: str("u1"), Content: str("hi")})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	comment, err := svc.CreateComment(ctx, "p1", &domain.CreateCommentRequest{UserID: str("u1"), Content: str("hi")})
	require.NoError(t, err)
	assert.Equal(t, domain.Comment{CommentID: "c-1", Content: "hi", CreatedAt: domain.Timestamp(fixedNow), PostID: "p1", AuthorID: "u1"}, *comment)

	listed, err := svc.ListPostComments(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	_, err = svc.ListPostComments(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestCommentService_DeletePostComment(t *testing.T) {
	ctx := context.Background()
	g, svc := commentFixture(t)
	g.SeedComment(domain.Comment{CommentID: "c1", Content: "x", PostID: "p1", AuthorID: "u1"})

	assert.ErrorIs(t, svc.DeletePostComment(ctx, "nope", "c1"), domain.ErrPostNotFound)
	assert.ErrorIs(t, svc.DeletePostComment(ctx, "p1", "nope"), domain.ErrCommentNotFound)
	assert.ErrorIs(t, svc.DeletePostComment(ctx, "p2", "c1"), domain.ErrCommentNotInPost)

	require.NoError(t, svc.DeletePostComment(ctx, "p1", "c1"))
	_, err := svc.GetComment(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestCommentService_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	mr, c := newRedis(t)
	g := socialtest.NewGraph()
	g.SeedComment(domain.Comment{CommentID: "c1", Content: "old", PostID: "p1"})
	svc := NewCommentService(g.Comments, g.Posts, g.Users, c)

	_, err := svc.GetComment(ctx, "c1")
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.CommentKey("c1")))

	updated, err := svc.UpdateComment(ctx, "c1", &domain.UpdateCommentRequest{Content: str("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)
	assert.False(t, mr.Exists(cache.CommentKey("c1")))

	unchanged, err := svc.UpdateComment(ctx, "c1", &domain.UpdateCommentRequest{})
	require.NoError(t, err)
	assert.Equal(t, "new", unchanged.Content)

	_, err = svc.UpdateComment(ctx, "nope", &domain.UpdateCommentRequest{})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	require.NoError(t, svc.DeleteComment(ctx, "c1"))
	assert.ErrorIs(t, svc.DeleteComment(ctx, "c1"), domain.ErrCommentNotFound)
}

func TestCommentService_Likes(t *testing.T) {
	ctx := context.Background()
	g, svc := commentFixture(t)
	g.SeedComment(domain.Comment{CommentID: "c1", Content: "x", PostID: "p1"})

	_, err := svc.LikeComment(ctx, "c1", str(" "))
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.LikeComment(ctx, "c1", str("ghost"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.LikeComment(ctx, "nope", str("u1"))
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	id, err := svc.LikeComment(ctx, "c1", str("u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	likers, err := svc.ListLikers(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserRef{{UserID: "u1", Name: "user u1"}}, likers)

	_, err = svc.UnlikeComment(ctx, "c1", str("u1"))
	require.NoError(t, err)
	likers, err = svc.ListLikers(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, likers)

	comments, err := svc.ListComments(ctx, domain.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

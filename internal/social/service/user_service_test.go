package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/socialtest"
)

var fixedNow = time.Date(2025, 4, 26, 12, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

func fixed(b *basics, ids ...string) {
	b.now = func() time.Time { return fixedNow }
	b.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, cache.Cache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisCache(client, time.Minute)
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("cache down")
}
func (brokenCache) Set(context.Context, string, any) error   { return errors.New("cache down") }
func (brokenCache) Delete(context.Context, ...string) error { return errors.New("cache down") }

func seedUsers(g *socialtest.Graph, ids ...string) {
	for i, id := range ids {
		g.SeedUser(domain.User{UserID: id, Name: "user " + id, Email: id + "@example.com", CreatedAt: float64(i)})
	}
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	g := socialtest.NewGraph()
	svc := NewUserService(g.Users, nil)
	fixed(&svc.basics, "u-1")

	user, err := svc.CreateUser(ctx, &domain.CreateUserRequest{Name: str("  Ada "), Email: str("ada@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)
	assert.Equal(t, "  Ada ", user.Name)
	assert.Equal(t, domain.Timestamp(fixedNow), user.CreatedAt)

	stored, err := g.Users.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, *user, *stored)
}

func TestUserService_CreateUserValidationOrder(t *testing.T) {
	svc := NewUserService(socialtest.NewGraph().Users, nil)

	var verr *domain.ValidationError
	_, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = svc.CreateUser(context.Background(), &domain.CreateUserRequest{Name: str("ada"), Email: str("   ")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestUserService_ListUsersRejectsBadPage(t *testing.T) {
	svc := NewUserService(socialtest.NewGraph().Users, nil)
	_, err := svc.ListUsers(context.Background(), domain.Page{Limit: domain.MaxPageLimit + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestUserService_UpdateUserOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	g := socialtest.NewGraph()
	seedUsers(g, "u1")
	svc := NewUserService(g.Users, nil)

	user, err := svc.UpdateUser(ctx, "u1", &domain.UpdateUserRequest{Email: str("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "user u1", user.Name)
	assert.Equal(t, "new@example.com", user.Email)

	_, err = svc.UpdateUser(ctx, "u1", &domain.UpdateUserRequest{Name: str("")})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateUser(ctx, "ghost", &domain.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_GetUserIsCached(t *testing.T) {
	ctx := context.Background()
	mr, c := newRedis(t)
	g := socialtest.NewGraph()
	seedUsers(g, "u1")
	svc := NewUserService(g.Users, c)

	_, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.UserKey("u1")))

	// served from the cache while the store is down
	g.FailWith(errors.New("neo4j down"))
	user, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "user u1", user.Name)
	g.FailWith(nil)

	_, err = svc.UpdateUser(ctx, "u1", &domain.UpdateUserRequest{Name: str("renamed")})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.UserKey("u1")))

	user, err = svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", user.Name)

	require.NoError(t, svc.DeleteUser(ctx, "u1"))
	assert.False(t, mr.Exists(cache.UserKey("u1")))
	_, err = svc.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_BrokenCacheFallsBackToStore(t *testing.T) {
	g := socialtest.NewGraph()
	seedUsers(g, "u1")
	svc := NewUserService(g.Users, brokenCache{})

	user, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	assert.NoError(t, svc.DeleteUser(context.Background(), "u1"))
}

func TestUserService_AddFriendCheckOrder(t *testing.T) {
	ctx := context.Background()
	g := socialtest.NewGraph()
	seedUsers(g, "u1", "u2")
	svc := NewUserService(g.Users, nil)

	_, err := svc.AddFriend(ctx, "ghost", nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.AddFriend(ctx, "u1", nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "friend_id", verr.Field)

	_, err = svc.AddFriend(ctx, "u1", str("ghost"))
	assert.ErrorIs(t, err, domain.ErrFriendNotFound)

	// a user may befriend themselves
	_, err = svc.AddFriend(ctx, "u1", str("u1"))
	require.NoError(t, err)
	self, err := svc.AreFriends(ctx, "u1", "u1")
	require.NoError(t, err)
	assert.True(t, self)

	id, err := svc.AddFriend(ctx, "u1", str("u2"))
	require.NoError(t, err)
	assert.Equal(t, "u2", id)

	// symmetric and idempotent
	_, err = svc.AddFriend(ctx, "u1", str("u2"))
	require.NoError(t, err)
	ok, err := svc.AreFriends(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	friends, err := svc.ListFriends(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, &domain.Friends{UserID: "u2", Friends: []domain.UserRef{{UserID: "u1", Name: "user u1"}}}, friends)
}

func TestUserService_RemoveFriend(t *testing.T) {
	ctx := context.Background()
	g := socialtest.NewGraph()
	seedUsers(g, "u1", "u2")
	svc := NewUserService(g.Users, nil)

	_, err := svc.AddFriend(ctx, "u1", str("u2"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveFriend(ctx, "ghost", "u2"), domain.ErrUserNotFound)
	assert.ErrorIs(t, svc.RemoveFriend(ctx, "u1", "ghost"), domain.ErrFriendNotFound)
	require.NoError(t, svc.RemoveFriend(ctx, "u2", "u1"))

	ok, err := svc.AreFriends(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.AreFriends(ctx, "u1", "ghost")
	assert.ErrorIs(t, err, domain.ErrFriendNotFound)
}

func TestUserService_MutualFriends(t *testing.T) {
	ctx := context.Background()
	g := socialtest.NewGraph()
	seedUsers(g, "a", "b", "c", "d")
	svc := NewUserService(g.Users, nil)

	for _, pair := range [][2]string{{"a", "c"}, {"b", "c"}, {"a", "d"}} {
		_, err := svc.AddFriend(ctx, pair[0], str(pair[1]))
		require.NoError(t, err)
	}

	mutual, err := svc.MutualFriends(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, mutual)

	_, err = svc.MutualFriends(ctx, "a", "ghost")
	assert.ErrorIs(t, err, domain.ErrOtherUserNotFound)
	_, err = svc.MutualFriends(ctx, "ghost", "a")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_StoreErrorsPropagate(t *testing.T) {
	g := socialtest.NewGraph()
	boom := errors.New("boom")
	g.FailWith(boom)
	svc := NewUserService(g.Users, nil)

	_, err := svc.ListUsers(context.Background(), domain.Page{})
	assert.ErrorIs(t, err, boom)
	_, err = svc.AddFriend(context.Background(), "u1", str("u2"))
	assert.ErrorIs(t, err, boom)
}

// Package socialtest provides an in-memory social graph for tests of the
// service and HTTP layers.
package socialtest

import (
	"context"
	"sort"
	"sync"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// Graph holds the shared state behind the three stores.
type Graph struct {
	mu           sync.Mutex
	users        map[string]domain.User
	posts        map[string]domain.Post
	comments     map[string]domain.Comment
	friends      map[string]map[string]bool
	postLikes    map[string]map[string]bool
	commentLikes map[string]map[string]bool
	err          error

	Users    *UserStore
	Posts    *PostStore
	Comments *CommentStore
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	g := &Graph{
		users:        map[string]domain.User{},
		posts:        map[string]domain.Post{},
		comments:     map[string]domain.Comment{},
		friends:      map[string]map[string]bool{},
		postLikes:    map[string]map[string]bool{},
		commentLikes: map[string]map[string]bool{},
	}
	g.Users = &UserStore{g: g}
	g.Posts = &PostStore{g: g}
	g.Comments = &CommentStore{g: g}
	return g
}

// FailWith makes every subsequent store call return err. Pass nil to recover.
func (g *Graph) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// SeedUser inserts a user directly.
func (g *Graph) SeedUser(u domain.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.users[u.UserID] = u
}

func (g *Graph) SeedPost(p domain.Post) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.posts[p.PostID] = p
}

func (g *Graph) SeedComment(c domain.Comment) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.comments[c.CommentID] = c
}

func link(m map[string]map[string]bool, from, to string) {
	if m[from] == nil {
		m[from] = map[string]bool{}
	}
	m[from][to] = true
}

func page[T any](items []T, p domain.Page) []T {
	if p.Skip >= len(items) {
		return []T{}
	}
	items = items[p.Skip:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}

func (g *Graph) refs(ids map[string]bool) []domain.UserRef {
	refs := make([]domain.UserRef, 0, len(ids))
	for id := range ids {
		if u, ok := g.users[id]; ok {
			refs = append(refs, domain.UserRef{UserID: u.UserID, Name: u.Name})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].UserID < refs[j].UserID
	})
	return refs
}

func sortPosts(posts []domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt != posts[j].CreatedAt {
			return posts[i].CreatedAt < posts[j].CreatedAt
		}
		return posts[i].PostID < posts[j].PostID
	})
}

func sortComments(comments []domain.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt != comments[j].CreatedAt {
			return comments[i].CreatedAt < comments[j].CreatedAt
		}
		return comments[i].CommentID < comments[j].CommentID
	})
}

// UserStore is the in-memory user store.
type UserStore struct{ g *Graph }

func (s *UserStore) List(_ context.Context, p domain.Page) ([]domain.User, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	users := make([]domain.User, 0, len(s.g.users))
	for _, u := range s.g.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt != users[j].CreatedAt {
			return users[i].CreatedAt < users[j].CreatedAt
		}
		return users[i].UserID < users[j].UserID
	})
	return page(users, p), nil
}

func (s *UserStore) GetByID(_ context.Context, userID string) (*domain.User, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	u, ok := s.g.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	s.g.users[user.UserID] = *user
	return nil
}

func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	if _, ok := s.g.users[user.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	s.g.users[user.UserID] = *user
	return nil
}

func (s *UserStore) Delete(_ context.Context, userID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	if _, ok := s.g.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.g.users, userID)
	delete(s.g.friends, userID)
	for _, f := range s.g.friends {
		delete(f, userID)
	}
	for _, likers := range s.g.postLikes {
		delete(likers, userID)
	}
	for _, likers := range s.g.commentLikes {
		delete(likers, userID)
	}
	for id, p := range s.g.posts {
		if p.AuthorID == userID {
			p.AuthorID = ""
			s.g.posts[id] = p
		}
	}
	for id, c := range s.g.comments {
		if c.AuthorID == userID {
			c.AuthorID = ""
			s.g.comments[id] = c
		}
	}
	return nil
}

func (s *UserStore) ListFriends(_ context.Context, userID string) ([]domain.UserRef, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	return s.g.refs(s.g.friends[userID]), nil
}

func (s *UserStore) AddFriend(_ context.Context, userID, friendID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	_, okU := s.g.users[userID]
	_, okF := s.g.users[friendID]
	if !okU || !okF {
		return domain.ErrUserNotFound
	}
	link(s.g.friends, userID, friendID)
	link(s.g.friends, friendID, userID)
	return nil
}

func (s *UserStore) RemoveFriend(_ context.Context, userID, friendID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	delete(s.g.friends[userID], friendID)
	delete(s.g.friends[friendID], userID)
	return nil
}

func (s *UserStore) AreFriends(_ context.Context, userID, friendID string) (bool, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return false, s.g.err
	}
	return s.g.friends[userID][friendID], nil
}

func (s *UserStore) MutualFriends(_ context.Context, userID, otherID string) ([]string, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	mutual := []string{}
	for id := range s.g.friends[userID] {
		if s.g.friends[otherID][id] {
			mutual = append(mutual, id)
		}
	}
	sort.Strings(mutual)
	return mutual, nil
}

// PostStore is the in-memory post store.
type PostStore struct{ g *Graph }

func (s *PostStore) List(_ context.Context, p domain.Page) ([]domain.Post, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	posts := make([]domain.Post, 0, len(s.g.posts))
	for _, post := range s.g.posts {
		posts = append(posts, post)
	}
	sortPosts(posts)
	return page(posts, p), nil
}

func (s *PostStore) GetByID(_ context.Context, postID string) (*domain.Post, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	p, ok := s.g.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &p, nil
}

func (s *PostStore) ListByAuthor(_ context.Context, userID string) ([]domain.Post, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	posts := []domain.Post{}
	for _, p := range s.g.posts {
		if p.AuthorID == userID {
			posts = append(posts, p)
		}
	}
	sortPosts(posts)
	return posts, nil
}

func (s *PostStore) Create(_ context.Context, authorID string, post *domain.Post) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	if _, ok := s.g.users[authorID]; !ok {
		return domain.ErrUserNotFound
	}
	post.AuthorID = authorID
	s.g.posts[post.PostID] = *post
	return nil
}

func (s *PostStore) Update(_ context.Context, post *domain.Post) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	if _, ok := s.g.posts[post.PostID]; !ok {
		return domain.ErrPostNotFound
	}
	s.g.posts[post.PostID] = *post
	return nil
}

func (s *PostStore) Delete(_ context.Context, postID string) ([]string, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	if _, ok := s.g.posts[postID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	removed := []string{}
	for id, c := range s.g.comments {
		if c.PostID == postID {
			removed = append(removed, id)
			delete(s.g.comments, id)
			delete(s.g.commentLikes, id)
		}
	}
	sort.Strings(removed)
	delete(s.g.posts, postID)
	delete(s.g.postLikes, postID)
	return removed, nil
}

func (s *PostStore) Like(_ context.Context, userID, postID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	_, okU := s.g.users[userID]
	_, okP := s.g.posts[postID]
	if !okU || !okP {
		return domain.ErrPostNotFound
	}
	link(s.g.postLikes, postID, userID)
	return nil
}

func (s *PostStore) Unlike(_ context.Context, userID, postID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	delete(s.g.postLikes[postID], userID)
	return nil
}

func (s *PostStore) ListLikers(_ context.Context, postID string) ([]domain.UserRef, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	return s.g.refs(s.g.postLikes[postID]), nil
}

// CommentStore is the in-memory comment store.
type CommentStore struct{ g *Graph }

func (s *CommentStore) List(_ context.Context, p domain.Page) ([]domain.Comment, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	comments := make([]domain.Comment, 0, len(s.g.comments))
	for _, c := range s.g.comments {
		comments = append(comments, c)
	}
	sortComments(comments)
	return page(comments, p), nil
}

func (s *CommentStore) GetByID(_ context.Context, commentID string) (*domain.Comment, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	c, ok := s.g.comments[commentID]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return &c, nil
}

func (s *CommentStore) ListByPost(_ context.Context, postID string) ([]domain.Comment, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	comments := []domain.Comment{}
	for _, c := range s.g.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sortComments(comments)
	return comments, nil
}

func (s *CommentStore) Create(_ context.Context, authorID, postID string, comment *domain.Comment) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	_, okU := s.g.users[authorID]
	_, okP := s.g.posts[postID]
	if !okU || !okP {
		return domain.ErrPostNotFound
	}
	comment.PostID = postID
	comment.AuthorID = authorID
	s.g.comments[comment.CommentID] = *comment
	return nil
}

func (s *CommentStore) Update(_ context.Context, comment *domain.Comment) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	if _, ok := s.g.comments[comment.CommentID]; !ok {
		return domain.ErrCommentNotFound
	}
	s.g.comments[comment.CommentID] = *comment
	return nil
}

func (s *CommentStore) Delete(_ context.Context, commentID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	if _, ok := s.g.comments[commentID]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(s.g.comments, commentID)
	delete(s.g.commentLikes, commentID)
	return nil
}

func (s *CommentStore) BelongsToPost(_ context.Context, postID, commentID string) (bool, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return false, s.g.err
	}
	c, ok := s.g.comments[commentID]
	return ok && c.PostID == postID, nil
}

func (s *CommentStore) Like(_ context.Context, userID, commentID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	_, okU := s.g.users[userID]
	_, okC := s.g.comments[commentID]
	if !okU || !okC {
		return domain.ErrCommentNotFound
	}
	link(s.g.commentLikes, commentID, userID)
	return nil
}

func (s *CommentStore) Unlike(_ context.Context, userID, commentID string) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return s.g.err
	}
	delete(s.g.commentLikes[commentID], userID)
	return nil
}

func (s *CommentStore) ListLikers(_ context.Context, commentID string) ([]domain.UserRef, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.g.err != nil {
		return nil, s.g.err
	}
	return s.g.refs(s.g.commentLikes[commentID]), nil
}

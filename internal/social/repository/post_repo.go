package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// PostRepository handles Neo4j operations for Post nodes, their authors and likes.
type PostRepository struct {
	db    graphdb.Runner
	likes likes
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db graphdb.Runner) *PostRepository {
	return &PostRepository{db: db, likes: likes{db: db, target: postTarget}}
}

func (r *PostRepository) List(ctx context.Context, page domain.Page) ([]domain.Post, error) {
	params := map[string]any{}
	query := `
		MATCH (p:Post)
		OPTIONAL MATCH (author:User)-[:CREATED]->(p)
		WITH p, head(collect(author.user_id)) AS author_id
		RETURN p, author_id
		ORDER BY p.created_at, p.post_id` + pageClause(page, params)

	records, err := r.db.Read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return postsFrom(records), nil
}

// GetByID retrieves a post by its ID
func (r *PostRepository) GetByID(ctx context.Context, postID string) (*domain.Post, error) {
	records, err := r.db.Read(ctx, `
		MATCH (p:Post {post_id: $post_id})
		OPTIONAL MATCH (author:User)-[:CREATED]->(p)
		RETURN p, author.user_id AS author_id
		LIMIT 1
	`, map[string]any{"post_id": postID})
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return firstPost(records)
}

// ListByAuthor returns the posts created by userID.
func (r *PostRepository) ListByAuthor(ctx context.Context, userID string) ([]domain.Post, error) {
	records, err := r.db.Read(ctx, `
		MATCH (u:User {user_id: $user_id})-[:CREATED]->(p:Post)
		RETURN p, u.user_id AS author_id
		ORDER BY p.created_at, p.post_id
	`, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return postsFrom(records), nil
}

// Create stores the post and its CREATED relationship in one transaction.
func (r *PostRepository) Create(ctx context.Context, authorID string, post *domain.Post) error {
	records, err := r.db.Write(ctx, `
		MATCH (u:User {user_id: $user_id})
		CREATE (u)-[:CREATED]->(p:Post {post_id: $post_id, title: $title, content: $content, created_at: $created_at})
		RETURN p, u.user_id AS author_id
	`, map[string]any{
		"user_id":    authorID,
		"post_id":    post.PostID,
		"title":      post.Title,
		"content":    post.Content,
		"created_at": post.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrUserNotFound
	}
	post.AuthorID = authorID
	return nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	records, err := r.db.Write(ctx, `
		MATCH (p:Post {post_id: $post_id})
		SET p.title = $title, p.content = $content
		RETURN p
	`, map[string]any{
		"post_id": post.PostID,
		"title":   post.Title,
		"content": post.Content,
	})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// Delete removes the post and every comment attached to it, returning the
// IDs of the deleted comments.
func (r *PostRepository) Delete(ctx context.Context, postID string) ([]string, error) {
	records, err := r.db.Write(ctx, `
		MATCH (p:Post {post_id: $post_id})
		OPTIONAL MATCH (p)-[:HAS_COMMENT]->(c:Comment)
		WITH p, collect(c) AS comments
		WITH p, comments, [c IN comments | c.comment_id] AS comment_ids
		FOREACH (c IN comments | DETACH DELETE c)
		DETACH DELETE p
		RETURN comment_ids
	`, map[string]any{"post_id": postID})
	if err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return graphdb.StringsValue(records[0], "comment_ids"), nil
}

func (r *PostRepository) Like(ctx context.Context, userID, postID string) error {
	return r.likes.like(ctx, userID, postID)
}

func (r *PostRepository) Unlike(ctx context.Context, userID, postID string) error {
	return r.likes.unlike(ctx, userID, postID)
}

func (r *PostRepository) ListLikers(ctx context.Context, postID string) ([]domain.UserRef, error) {
	return r.likes.likers(ctx, postID)
}

func postsFrom(records []*neo4j.Record) []domain.Post {
	posts := make([]domain.Post, 0, len(records))
	for _, rec := range records {
		if p, ok := postFromRecord(rec); ok {
			posts = append(posts, p)
		}
	}
	return posts
}

func firstPost(records []*neo4j.Record) (*domain.Post, error) {
	if len(records) == 0 {
		return nil, domain.ErrPostNotFound
	}
	p, ok := postFromRecord(records[0])
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &p, nil
}

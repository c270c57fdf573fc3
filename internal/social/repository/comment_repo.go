package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// CommentRepository handles Neo4j operations for Comment nodes.
type CommentRepository struct {
	db    graphdb.Runner
	likes likes
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db graphdb.Runner) *CommentRepository {
	return &CommentRepository{db: db, likes: likes{db: db, target: commentTarget}}
}

func (r *CommentRepository) List(ctx context.Context, page domain.Page) ([]domain.Comment, error) {
	params := map[string]any{}
	query := `
		MATCH (c:Comment)
		OPTIONAL MATCH (p:Post)-[:HAS_COMMENT]->(c)
		OPTIONAL MATCH (author:User)-[:CREATED]->(c)
		WITH c, head(collect(DISTINCT p.post_id)) AS post_id, head(collect(DISTINCT author.user_id)) AS author_id
		RETURN c, post_id, author_id
		ORDER BY c.created_at, c.comment_id` + pageClause(page, params)

	records, err := r.db.Read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return commentsFrom(records), nil
}

// GetByID retrieves a comment by its ID
func (r *CommentRepository) GetByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	records, err := r.db.Read(ctx, `
		MATCH (c:Comment {comment_id: $comment_id})
		OPTIONAL MATCH (p:Post)-[:HAS_COMMENT]->(c)
		OPTIONAL MATCH (author:User)-[:CREATED]->(c)
		RETURN c, p.post_id AS post_id, author.user_id AS author_id
		LIMIT 1
	`, map[string]any{"comment_id": commentID})
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrCommentNotFound
	}

	c, ok := commentFromRecord(records[0])
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return &c, nil
}

// ListByPost returns the comments attached to postID.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	records, err := r.db.Read(ctx, `
		MATCH (p:Post {post_id: $post_id})-[:HAS_COMMENT]->(c:Comment)
		OPTIONAL MATCH (author:User)-[:CREATED]->(c)
		RETURN c, p.post_id AS post_id, author.user_id AS author_id
		ORDER BY c.created_at, c.comment_id
	`, map[string]any{"post_id": postID})
	if err != nil {
		return nil, fmt.Errorf("list post comments: %w", err)
	}
	return commentsFrom(records), nil
}

// Create stores the comment with its CREATED and HAS_COMMENT relationships.
func (r *CommentRepository) Create(ctx context.Context, authorID, postID string, comment *domain.Comment) error {
	records, err := r.db.Write(ctx, `
		MATCH (u:User {user_id: $user_id}), (p:Post {post_id: $post_id})
		CREATE (u)-[:CREATED]->(c:Comment {comment_id: $comment_id, content: $content, created_at: $created_at}),
		       (p)-[:HAS_COMMENT]->(c)
		RETURN c, p.post_id AS post_id, u.user_id AS author_id
	`, map[string]any{
		"user_id":    authorID,
		"post_id":    postID,
		"comment_id": comment.CommentID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrPostNotFound
	}
	comment.PostID = postID
	comment.AuthorID = authorID
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	records, err := r.db.Write(ctx, `
		MATCH (c:Comment {comment_id: $comment_id})
		SET c.content = $content
		RETURN c
	`, map[string]any{
		"comment_id": comment.CommentID,
		"content":    comment.Content,
	})
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	records, err := r.db.Write(ctx, `
		MATCH (c:Comment {comment_id: $comment_id})
		WITH c, c.comment_id AS comment_id
		DETACH DELETE c
		RETURN comment_id
	`, map[string]any{"comment_id": commentID})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if len(records) == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// BelongsToPost reports whether commentID hangs off postID.
func (r *CommentRepository) BelongsToPost(ctx context.Context, postID, commentID string) (bool, error) {
	records, err := r.db.Read(ctx, `
		OPTIONAL MATCH (:Post {post_id: $post_id})-[r:HAS_COMMENT]->(:Comment {comment_id: $comment_id})
		RETURN r IS NOT NULL AS found
		LIMIT 1
	`, map[string]any{"post_id": postID, "comment_id": commentID})
	if err != nil {
		return false, fmt.Errorf("check comment ownership: %w", err)
	}
	if len(records) == 0 {
		return false, nil
	}
	return graphdb.BoolValue(records[0], "found"), nil
}

func (r *CommentRepository) Like(ctx context.Context, userID, commentID string) error {
	return r.likes.like(ctx, userID, commentID)
}

func (r *CommentRepository) Unlike(ctx context.Context, userID, commentID string) error {
	return r.likes.unlike(ctx, userID, commentID)
}

func (r *CommentRepository) ListLikers(ctx context.Context, commentID string) ([]domain.UserRef, error) {
	return r.likes.likers(ctx, commentID)
}

func commentsFrom(records []*neo4j.Record) []domain.Comment {
	comments := make([]domain.Comment, 0, len(records))
	for _, rec := range records {
		if c, ok := commentFromRecord(rec); ok {
			comments = append(comments, c)
		}
	}
	return comments
}

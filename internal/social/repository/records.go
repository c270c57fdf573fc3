package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// pageClause renders SKIP/LIMIT for a validated page and adds the matching
// parameters.
func pageClause(page domain.Page, params map[string]any) string {
	clause := ""
	if page.Skip > 0 {
		clause += " SKIP $skip"
		params["skip"] = page.Skip
	}
	if page.Limit > 0 {
		clause += " LIMIT $limit"
		params["limit"] = page.Limit
	}
	return clause
}

func userFromRecord(rec *neo4j.Record) (domain.User, bool) {
	props, ok := graphdb.NodeProps(rec, "u")
	if !ok {
		return domain.User{}, false
	}
	return domain.User{
		UserID:    graphdb.String(props, "user_id"),
		Name:      graphdb.String(props, "name"),
		Email:     graphdb.String(props, "email"),
		CreatedAt: graphdb.Float(props, "created_at"),
	}, true
}

func postFromRecord(rec *neo4j.Record) (domain.Post, bool) {
	props, ok := graphdb.NodeProps(rec, "p")
	if !ok {
		return domain.Post{}, false
	}
	return domain.Post{
		PostID:    graphdb.String(props, "post_id"),
		Title:     graphdb.String(props, "title"),
		Content:   graphdb.String(props, "content"),
		CreatedAt: graphdb.Float(props, "created_at"),
		AuthorID:  graphdb.StringValue(rec, "author_id"),
	}, true
}

func commentFromRecord(rec *neo4j.Record) (domain.Comment, bool) {
	props, ok := graphdb.NodeProps(rec, "c")
	if !ok {
		return domain.Comment{}, false
	}
	return domain.Comment{
		CommentID: graphdb.String(props, "comment_id"),
		Content:   graphdb.String(props, "content"),
		CreatedAt: graphdb.Float(props, "created_at"),
		PostID:    graphdb.StringValue(rec, "post_id"),
		AuthorID:  graphdb.StringValue(rec, "author_id"),
	}, true
}

func userRefsFromRecords(records []*neo4j.Record) []domain.UserRef {
	refs := make([]domain.UserRef, 0, len(records))
	for _, rec := range records {
		refs = append(refs, domain.UserRef{
			UserID: graphdb.StringValue(rec, "user_id"),
			Name:   graphdb.StringValue(rec, "name"),
		})
	}
	return refs
}

// likeTarget describes a node kind users can like.
type likeTarget struct {
	label    string
	key      string
	notFound error
}

var (
	postTarget    = likeTarget{label: domain.LabelPost, key: "post_id", notFound: domain.ErrPostNotFound}
	commentTarget = likeTarget{label: domain.LabelComment, key: "comment_id", notFound: domain.ErrCommentNotFound}
)

// likes implements LIKES bookkeeping shared by posts and comments.
type likes struct {
	db     graphdb.Runner
	target likeTarget
}

func (l likes) like(ctx context.Context, userID, targetID string) error {
	query := fmt.Sprintf(`
		MATCH (u:User {user_id: $user_id}), (t:%s {%s: $target_id})
		MERGE (u)-[:LIKES]->(t)
		RETURN t.%s AS id
	`, l.target.label, l.target.key, l.target.key)

	records, err := l.db.Write(ctx, query, map[string]any{
		"user_id":   userID,
		"target_id": targetID,
	})
	if err != nil {
		return fmt.Errorf("like %s: %w", l.target.label, err)
	}
	if len(records) == 0 {
		return l.target.notFound
	}
	return nil
}

func (l likes) unlike(ctx context.Context, userID, targetID string) error {
	query := fmt.Sprintf(`
		MATCH (:User {user_id: $user_id})-[r:LIKES]->(:%s {%s: $target_id})
		DELETE r
	`, l.target.label, l.target.key)

	_, err := l.db.Write(ctx, query, map[string]any{
		"user_id":   userID,
		"target_id": targetID,
	})
	if err != nil {
		return fmt.Errorf("unlike %s: %w", l.target.label, err)
	}
	return nil
}

func (l likes) likers(ctx context.Context, targetID string) ([]domain.UserRef, error) {
	query := fmt.Sprintf(`
		MATCH (u:User)-[:LIKES]->(:%s {%s: $target_id})
		RETURN u.user_id AS user_id, u.name AS name
		ORDER BY name, user_id
	`, l.target.label, l.target.key)

	records, err := l.db.Read(ctx, query, map[string]any{"target_id": targetID})
	if err != nil {
		return nil, fmt.Errorf("list %s likers: %w", l.target.label, err)
	}
	return userRefsFromRecords(records), nil
}

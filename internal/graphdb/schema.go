package graphdb

import (
	"context"
	"fmt"
)

// Constraints keep the primary key of every label unique.
var Constraints = []string{
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.user_id IS UNIQUE",
	"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.post_id IS UNIQUE",
	"CREATE CONSTRAINT comment_id_unique IF NOT EXISTS FOR (c:Comment) REQUIRE c.comment_id IS UNIQUE",
}

// EnsureSchema applies Constraints. Every statement is idempotent, so it is
// safe to call on each start.
func EnsureSchema(ctx context.Context, r Runner) error {
	for _, stmt := range Constraints {
		if _, err := r.Write(ctx, stmt, nil); err != nil {
			return fmt.Errorf("apply schema %q: %w", stmt, err)
		}
	}
	return nil
}

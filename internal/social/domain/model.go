package domain

import "time"

// Graph labels and relationship types.
const (
	LabelUser    = "User"
	LabelPost    = "Post"
	LabelComment = "Comment"

	RelFriendsWith = "FRIENDS_WITH"
	RelCreated     = "CREATED"
	RelLikes       = "LIKES"
	RelHasComment  = "HAS_COMMENT"
)

// User is a person in the social graph. CreatedAt is epoch seconds.
type User struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	CreatedAt float64 `json:"created_at"`
}

// UserRef is the short form used for friend and liker listings.
type UserRef struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type Post struct {
	PostID    string  `json:"post_id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	CreatedAt float64 `json:"created_at"`
	AuthorID  string  `json:"author_id,omitempty"`
}

type Comment struct {
	CommentID string  `json:"comment_id"`
	Content   string  `json:"content"`
	CreatedAt float64 `json:"created_at"`
	PostID    string  `json:"post_id,omitempty"`
	AuthorID  string  `json:"author_id,omitempty"`
}

// Friends is the response of a friend listing.
type Friends struct {
	UserID  string    `json:"user_id"`
	Friends []UserRef `json:"friends"`
}

// Page limits a listing. Limit 0 means no limit.
type Page struct {
	Skip  int
	Limit int
}

const MaxPageLimit = 1000

// Validate checks the bounds of a page.
func (p Page) Validate() error {
	if p.Skip < 0 || p.Limit < 0 || p.Limit > MaxPageLimit {
		return ErrInvalidPage
	}
	return nil
}

// Timestamp converts t to the epoch-seconds representation stored in the graph.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// CreateUserRequest carries the raw body of a user creation. Nil fields were
// absent from the request.
type CreateUserRequest struct {
	Name  *string
	Email *string
}

type UpdateUserRequest struct {
	Name  *string
	Email *string
}

type CreatePostRequest struct {
	Title   *string
	Content *string
}

type UpdatePostRequest struct {
	Title   *string
	Content *string
}

type CreateCommentRequest struct {
	UserID  *string
	Content *string
}

type UpdateCommentRequest struct {
	Content *string
}

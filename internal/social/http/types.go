package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/logging"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/service"
)

// Handler serves the users, posts and comments routes.
type Handler struct {
	users    *service.UserService
	posts    *service.PostService
	comments *service.CommentService
}

// New creates a new Handler
func New(users *service.UserService, posts *service.PostService, comments *service.CommentService) *Handler {
	return &Handler{users: users, posts: posts, comments: comments}
}

// Request bodies. Pointer fields distinguish absent properties from empty ones.
type userBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type postBody struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type commentBody struct {
	UserID  *string `json:"user_id"`
	Content *string `json:"content"`
}

type friendBody struct {
	FriendID *string `json:"friend_id"`
}

type likeBody struct {
	UserID *string `json:"user_id"`
}

var notFoundMessages = []struct {
	err error
	msg string
}{
	{domain.ErrUserNotFound, "User not found"},
	{domain.ErrFriendNotFound, "Friend User not found"},
	{domain.ErrOtherUserNotFound, "Other User not found"},
	{domain.ErrPostNotFound, "Post not found"},
	{domain.ErrCommentNotFound, "Comment not found"},
}

// writeError maps service errors to status codes. Anything unrecognised is
// logged and reported as a 500 without detail.
func writeError(c *gin.Context, err error) {
	respondError(c, err, ".")
}

// writeChangeError is writeError for the PUT and DELETE entity routes, whose
// not-found messages carry no trailing period.
func writeChangeError(c *gin.Context, err error) {
	respondError(c, err, "")
}

func respondError(c *gin.Context, err error, notFoundSuffix string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	case errors.Is(err, domain.ErrInvalidPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			c.JSON(http.StatusNotFound, gin.H{"error": nf.msg + notFoundSuffix})
			return
		}
	}

	logging.FromContext(c.Request.Context()).Error("request failed",
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// bindBody decodes the JSON body, answering 400 on failure.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// parsePage reads the optional skip and limit query parameters.
func parsePage(c *gin.Context) (domain.Page, error) {
	var page domain.Page
	if v, ok := c.GetQuery("skip"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, domain.ErrInvalidPage
		}
		page.Skip = n
	}
	if v, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, domain.ErrInvalidPage
		}
		page.Limit = n
	}
	return page, page.Validate()
}

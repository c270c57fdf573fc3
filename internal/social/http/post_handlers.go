package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

func (h *Handler) ListPosts(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a post by ID
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.posts.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	var body postBody
	if !bindBody(c, &body) {
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), c.Param("post_id"), &domain.UpdatePostRequest{Title: body.Title, Content: body.Content})
	if err != nil {
		writeChangeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post successfully updated", "post": post})
}

// DeletePost deletes a post and its comments
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), c.Param("post_id")); err != nil {
		writeChangeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) LikePost(c *gin.Context) {
	var body likeBody
	if !bindBody(c, &body) {
		return
	}

	userID, err := h.posts.LikePost(c.Request.Context(), c.Param("post_id"), body.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post successfully liked by User " + userID})
}

func (h *Handler) UnlikePost(c *gin.Context) {
	var body likeBody
	if !bindBody(c, &body) {
		return
	}

	userID, err := h.posts.UnlikePost(c.Request.Context(), c.Param("post_id"), body.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post successfully unliked by User " + userID})
}

func (h *Handler) ListPostLikers(c *gin.Context) {
	likers, err := h.posts.ListLikers(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, likers)
}

func (h *Handler) ListPostComments(c *gin.Context) {
	comments, err := h.comments.ListPostComments(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment adds a comment to the post in the path
func (h *Handler) CreateComment(c *gin.Context) {
	var body commentBody
	if !bindBody(c, &body) {
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), c.Param("post_id"), &domain.CreateCommentRequest{UserID: body.UserID, Content: body.Content})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment successfully created", "comment": comment})
}

// DeletePostComment deletes a comment through the post it belongs to
func (h *Handler) DeletePostComment(c *gin.Context) {
	postID := c.Param("post_id")
	err := h.comments.DeletePostComment(c.Request.Context(), postID, c.Param("comment_id"))
	if errors.Is(err, domain.ErrCommentNotInPost) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Comment not found in Post %s", postID)})
		return
	}
	if err != nil {
		writeChangeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

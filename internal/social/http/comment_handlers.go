package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

func (h *Handler) ListComments(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) GetComment(c *gin.Context) {
	comment, err := h.comments.GetComment(c.Request.Context(), c.Param("comment_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) UpdateComment(c *gin.Context) {
	var body commentBody
	if !bindBody(c, &body) {
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), c.Param("comment_id"), &domain.UpdateCommentRequest{Content: body.Content})
	if err != nil {
		writeChangeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment successfully updated", "comment": comment})
}

func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.comments.DeleteComment(c.Request.Context(), c.Param("comment_id")); err != nil {
		writeChangeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) LikeComment(c *gin.Context) {
	var body likeBody
	if !bindBody(c, &body) {
		return
	}

	userID, err := h.comments.LikeComment(c.Request.Context(), c.Param("comment_id"), body.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment successfully liked by User " + userID})
}

func (h *Handler) UnlikeComment(c *gin.Context) {
	var body likeBody
	if !bindBody(c, &body) {
		return
	}

	userID, err := h.comments.UnlikeComment(c.Request.Context(), c.Param("comment_id"), body.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment successfully unliked by User " + userID})
}

func (h *Handler) ListCommentLikers(c *gin.Context) {
	likers, err := h.comments.ListLikers(c.Request.Context(), c.Param("comment_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, likers)
}

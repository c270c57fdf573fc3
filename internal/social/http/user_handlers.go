package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

// ListUsers returns all users, optionally paged
func (h *Handler) ListUsers(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser retrieves a user by ID
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser creates a new user
func (h *Handler) CreateUser(c *gin.Context) {
	var body userBody
	if !bindBody(c, &body) {
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &domain.CreateUserRequest{Name: body.Name, Email: body.Email})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User successfully created", "user": user})
}

// UpdateUser updates the supplied fields of a user
func (h *Handler) UpdateUser(c *gin.Context) {
	var body userBody
	if !bindBody(c, &body) {
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), c.Param("user_id"), &domain.UpdateUserRequest{Name: body.Name, Email: body.Email})
	if err != nil {
		writeChangeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User successfully updated", "user": user})
}

// DeleteUser deletes a user and all of its relationships
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("user_id")); err != nil {
		writeChangeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListFriends(c *gin.Context) {
	friends, err := h.users.ListFriends(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *Handler) AddFriend(c *gin.Context) {
	var body friendBody
	if !bindBody(c, &body) {
		return
	}

	if _, err := h.users.AddFriend(c.Request.Context(), c.Param("user_id"), body.FriendID); err != nil {
		friendError(c, err, "Friend User to add not found.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Friend successfully added"})
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	if err := h.users.RemoveFriend(c.Request.Context(), c.Param("user_id"), c.Param("friend_id")); err != nil {
		friendError(c, err, "Friend User to remove not found.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Friend successfully removed"})
}

// AreFriends answers with a bare JSON boolean
func (h *Handler) AreFriends(c *gin.Context) {
	ok, err := h.users.AreFriends(c.Request.Context(), c.Param("user_id"), c.Param("friend_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok)
}

func (h *Handler) MutualFriends(c *gin.Context) {
	ids, err := h.users.MutualFriends(c.Request.Context(), c.Param("user_id"), c.Param("other_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (h *Handler) ListUserPosts(c *gin.Context) {
	posts, err := h.posts.ListUserPosts(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost creates a post authored by the user in the path
func (h *Handler) CreatePost(c *gin.Context) {
	var body postBody
	if !bindBody(c, &body) {
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), c.Param("user_id"), &domain.CreatePostRequest{Title: body.Title, Content: body.Content})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post successfully created", "post": post})
}

func friendError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, domain.ErrFriendNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	writeError(c, err)
}

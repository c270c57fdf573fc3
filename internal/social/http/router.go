package http

import "github.com/gin-gonic/gin"

// Register registers the social graph routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.GET("/:user_id", h.GetUser)
	users.PUT("/:user_id", h.UpdateUser)
	users.DELETE("/:user_id", h.DeleteUser)
	users.GET("/:user_id/friends", h.ListFriends)
	users.POST("/:user_id/friends", h.AddFriend)
	users.GET("/:user_id/friends/:friend_id", h.AreFriends)
	users.DELETE("/:user_id/friends/:friend_id", h.RemoveFriend)
	users.GET("/:user_id/mutual-friends/:other_id", h.MutualFriends)
	users.GET("/:user_id/posts", h.ListUserPosts)
	users.POST("/:user_id/posts", h.CreatePost)

	posts := rg.Group("/posts")
	posts.GET("", h.ListPosts)
	posts.GET("/:post_id", h.GetPost)
	posts.PUT("/:post_id", h.UpdatePost)
	posts.DELETE("/:post_id", h.DeletePost)
	posts.POST("/:post_id/like", h.LikePost)
	posts.DELETE("/:post_id/like", h.UnlikePost)
	posts.GET("/:post_id/likes", h.ListPostLikers)
	posts.GET("/:post_id/comments", h.ListPostComments)
	posts.POST("/:post_id/comments", h.CreateComment)
	posts.DELETE("/:post_id/comments/:comment_id", h.DeletePostComment)

	comments := rg.Group("/comments")
	comments.GET("", h.ListComments)
	comments.GET("/:comment_id", h.GetComment)
	comments.PUT("/:comment_id", h.UpdateComment)
	comments.DELETE("/:comment_id", h.DeleteComment)
	comments.POST("/:comment_id/like", h.LikeComment)
	comments.DELETE("/:comment_id/like", h.UnlikeComment)
	comments.GET("/:comment_id/likes", h.ListCommentLikers)
}

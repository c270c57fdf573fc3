package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	socialhttp "github.com/GoSim-25-26J-441/social-graph-api/internal/social/http"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/repository"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/service"
)

type SocialDeps struct {
	Graph graphdb.Runner
	Cache cache.Cache     // nil disables caching
	Auth  gin.HandlerFunc // nil leaves the routes open
}

// RegisterSocial mounts the user, post and comment routes at the root of r.
func RegisterSocial(r gin.IRouter, dep SocialDeps) {
	userRepo := repository.NewUserRepository(dep.Graph)
	postRepo := repository.NewPostRepository(dep.Graph)
	commentRepo := repository.NewCommentRepository(dep.Graph)

	handler := socialhttp.New(
		service.NewUserService(userRepo, dep.Cache),
		service.NewPostService(postRepo, userRepo, dep.Cache),
		service.NewCommentService(commentRepo, postRepo, userRepo, dep.Cache),
	)

	api := r.Group("/")
	if dep.Auth != nil {
		api.Use(dep.Auth)
	}
	handler.Register(api)
}

package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/social-graph-api/config"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/auth"
	authmw "github.com/GoSim-25-26J-441/social-graph-api/internal/auth/middleware"
)

// AuthMiddleware picks the middleware for AUTH_MODE. It returns nil for
// AuthModeNone.
func AuthMiddleware(ctx context.Context, cfg config.AuthConfig) (gin.HandlerFunc, error) {
	switch cfg.Mode {
	case config.AuthModeNone, "":
		return nil, nil
	case config.AuthModeAPIKey:
		return authmw.APIKeyMiddleware(cfg.APIKey), nil
	case config.AuthModeFirebase:
		client, err := auth.InitializeFirebase(ctx, &cfg)
		if err != nil {
			return nil, err
		}
		return authmw.FirebaseAuthMiddleware(client), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.Mode)
	}
}

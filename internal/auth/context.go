package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by the auth middleware.
const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxAuthMethod  = "auth_method"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by FirebaseAuthMiddleware
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// Method reports how the current request was authenticated: "apikey",
// "firebase", or empty when auth is disabled.
func Method(c *gin.Context) string {
	return c.GetString(CtxAuthMethod)
}

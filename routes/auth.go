package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/auth"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, d Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(d.DB, d.Notifier, d.AllowSuperuserSignup))
		authGroup.POST("/token", auth.TokenHandler(d.DB, d.Tokens))

		// Current user (JWT‐protected)
		authGroup.GET("/me", append(d.authenticated(), auth.MeHandler)...)
	}
}

package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/middleware"
)

// GET /auth/me
func MeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

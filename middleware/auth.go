package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"gorm.io/gorm"
)

const (
	userIDKey = "user_id"
	userKey   = "user"
)

// TokenDecoder resolves a bearer token to the subject user id.
type TokenDecoder interface {
	Decode(token string) (uint, error)
}

// Authenticate checks the bearer token and stores its subject id. It does not
// touch the database.
func Authenticate(tokens TokenDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		userID, err := tokens.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Could not validate credentials"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// LoadUser resolves the authenticated id to an active user. Must run after
// Authenticate.
func LoadUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(userIDKey)

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Printf("❌ Failed to load user %d: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Inactive user"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireSuperuser rejects users without the superuser flag. Must run after
// LoadUser.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsSuperuser {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "The user doesn't have enough privileges"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by LoadUser, or the zero User.
func CurrentUser(c *gin.Context) models.User {
	v, _ := c.Get(userKey)
	user, _ := v.(models.User)
	return user
}

package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"gorm.io/gorm"
)

type tokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// POST /auth/token
//
// OAuth2 password flow: form-encoded username (the email) and password.
func TokenHandler(db *gorm.DB, tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form tokenForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		var user models.User
		err := db.WithContext(c.Request.Context()).Where("email = ?", form.Username).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ Failed to look up %s: %v", form.Username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if err != nil || !VerifyPassword(form.Password, user.HashedPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect email or password"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Inactive user"})
			return
		}

		token, err := tokens.Issue(user.ID)
		if err != nil {
			log.Printf("❌ Token generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

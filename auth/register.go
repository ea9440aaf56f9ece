package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/junaidrashid-git/bookmarket-api/notify"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("a user with this email already exists")

type Notifier interface {
	Notify(msg notify.Message)
}

type RegisterInput struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required"`
	FullName    *string `json:"full_name"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
}

// RegisterUser stores a new user after checking the email is free. The
// superuser flag is only kept when allowSuperuser is set.
func RegisterUser(ctx context.Context, db *gorm.DB, in RegisterInput, allowSuperuser bool) (*models.User, error) {
	email := strings.TrimSpace(in.Email)

	var existing int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:          email,
		HashedPassword: hashed,
		IsActive:       in.IsActive == nil || *in.IsActive,
		IsSuperuser:    in.IsSuperuser && allowSuperuser,
		FullName:       in.FullName,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// POST /auth/register
func RegisterHandler(db *gorm.DB, notifier Notifier, allowSuperuser bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := RegisterUser(c.Request.Context(), db, input, allowSuperuser)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			log.Printf("❌ Registration failed for %s: %v", input.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		notifier.Notify(notify.Message{
			Kind:      notify.KindUserRegistered,
			Recipient: user.Email,
			Subject:   "Welcome to BookMarket!",
			Body:      "Your account was created successfully.",
		})

		c.JSON(http.StatusCreated, user)
	}
}

package bookControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"gorm.io/gorm"
)

func bookIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return 0, false
	}
	return uint(id), true
}

// findBook writes the error response itself and reports whether the book was found.
func findBook(c *gin.Context, db *gorm.DB, id uint) (*models.Book, bool) {
	var book models.Book
	if err := db.WithContext(c.Request.Context()).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve book"})
		}
		return nil, false
	}
	return &book, true
}

// GET /books/:id
func GetBookByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bookIDParam(c)
		if !ok {
			return
		}
		book, ok := findBook(c, db, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, book)
	}
}

package bookControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DELETE /books/:id (superuser)
//
// Soft delete: the book leaves the catalog while past order items still
// resolve it.
func DeleteBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bookIDParam(c)
		if !ok {
			return
		}
		book, ok := findBook(c, db, id)
		if !ok {
			return
		}

		if err := db.WithContext(c.Request.Context()).Delete(book).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
			return
		}

		log.Printf("🗑️ Book deleted: #%d %s", book.ID, book.Title)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

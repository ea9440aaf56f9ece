package bookControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookInput struct {
	Title         string           `json:"title" binding:"required"`
	Author        string           `json:"author" binding:"required"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int              `json:"stock_quantity" binding:"min=0"`
}

// POST /books/ (superuser)
func CreateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}

		book := models.Book{
			Title:         input.Title,
			Author:        input.Author,
			Description:   input.Description,
			Price:         input.Price.Round(2),
			StockQuantity: input.StockQuantity,
		}
		if err := db.WithContext(c.Request.Context()).Create(&book).Error; err != nil {
			log.Printf("❌ Failed to create book %q: %v", book.Title, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
			return
		}

		log.Printf("📚 Book created: #%d %s", book.ID, book.Title)
		c.JSON(http.StatusCreated, book)
	}
}

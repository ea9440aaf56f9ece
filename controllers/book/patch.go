package bookControllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// optionalString tells an absent field apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type UpdateBookInput struct {
	Title         *string          `json:"title" binding:"omitempty,min=1"`
	Author        *string          `json:"author" binding:"omitempty,min=1"`
	Description   optionalString   `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" binding:"omitempty,min=0"`
}

// PATCH /books/:id (superuser)
//
// Only the supplied fields change; "description": null clears it.
func UpdateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bookIDParam(c)
		if !ok {
			return
		}
		book, ok := findBook(c, db, id)
		if !ok {
			return
		}

		var input UpdateBookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Author != nil {
			updates["author"] = *input.Author
		}
		if input.Description.Set {
			// null clears the description
			updates["description"] = input.Description.Value
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			updates["price"] = input.Price.Round(2)
		}
		if input.StockQuantity != nil {
			updates["stock_quantity"] = *input.StockQuantity
		}

		if len(updates) > 0 {
			if err := db.WithContext(c.Request.Context()).Model(book).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
				return
			}
		}

		updated, ok := findBook(c, db, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

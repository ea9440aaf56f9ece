package bookControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Column order shared by export and import.
var excelHeaders = []string{"ID", "Title", "Author", "Description", "Price", "StockQuantity"}

// GET /admin/books/export
func ExportBooksToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var books []models.Book
		if err := db.WithContext(c.Request.Context()).Order("id").Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Books")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range excelHeaders {
			headerRow.AddCell().SetString(h)
		}

		for _, b := range books {
			row := sheet.AddRow()
			row.AddCell().SetInt(int(b.ID))
			row.AddCell().SetString(b.Title)
			row.AddCell().SetString(b.Author)
			if b.Description != nil {
				row.AddCell().SetString(*b.Description)
			} else {
				row.AddCell().SetString("")
			}
			row.AddCell().SetString(b.Price.StringFixed(2))
			row.AddCell().SetInt(b.StockQuantity)
		}

		c.Header("Content-Disposition", "attachment; filename=books.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

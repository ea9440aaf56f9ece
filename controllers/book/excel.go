package bookControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// parseBookRow reads one data row in excelHeaders order. id is zero when the
// ID column is blank.
func parseBookRow(row *xlsx.Row) (id uint, book models.Book, ok bool) {
	get := func(index int) string {
		if index < len(row.Cells) {
			return strings.TrimSpace(row.Cells[index].String())
		}
		return ""
	}

	if idStr := get(0); idStr != "" {
		v, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return 0, book, false
		}
		id = uint(v)
	}

	title, author := get(1), get(2)
	price, err := decimal.NewFromString(get(4))
	if title == "" || author == "" || err != nil || price.IsNegative() {
		return 0, book, false
	}

	stock := 0
	if stockStr := get(5); stockStr != "" {
		stock, err = strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			return 0, book, false
		}
	}

	book = models.Book{
		Title:         title,
		Author:        author,
		Price:         price.Round(2),
		StockQuantity: stock,
	}
	if desc := get(3); desc != "" {
		book.Description = &desc
	}
	return id, book, true
}

// POST /admin/books/import
//
// Rows whose ID matches a catalog book update it; every other valid row
// creates a new book. Invalid rows are skipped and counted.
func ImportBooksFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		conn := db.WithContext(c.Request.Context())
		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			id, book, ok := parseBookRow(sheet.Rows[i])
			if !ok {
				skippedCount++
				continue
			}

			if id != 0 {
				var existing models.Book
				err := conn.First(&existing, id).Error
				switch {
				case err == nil:
					existing.Title = book.Title
					existing.Author = book.Author
					existing.Description = book.Description
					existing.Price = book.Price
					existing.StockQuantity = book.StockQuantity
					if err := conn.Save(&existing).Error; err != nil {
						skippedCount++
					} else {
						updatedCount++
					}
					continue
				case !errors.Is(err, gorm.ErrRecordNotFound):
					skippedCount++
					continue
				}
			}

			if err := conn.Create(&book).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		log.Printf("📥 Book import finished: %d created, %d updated, %d skipped", createdCount, updatedCount, skippedCount)
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}

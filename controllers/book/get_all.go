package bookControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"gorm.io/gorm"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// titleContains builds a case-sensitive substring condition on title for the
// active dialect. LIKE folds case on sqlite and mysql, so it is not used here.
func titleContains(db *gorm.DB, search string) *gorm.DB {
	switch db.Dialector.Name() {
	case "postgres":
		return db.Where("strpos(title, ?) > 0", search)
	case "mysql":
		return db.Where("INSTR(BINARY title, ?) > 0", search)
	default:
		return db.Where("instr(title, ?) > 0", search)
	}
}

func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// GET /books/?offset=&limit=&search=
func GetBooks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1️⃣ Pagination params
		offset, ok := intQuery(c, "offset", 0)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
			return
		}
		limit, ok := intQuery(c, "limit", defaultLimit)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if limit > maxLimit {
			limit = maxLimit
		}

		// 2️⃣ Build query
		query := db.WithContext(c.Request.Context()).Model(&models.Book{})
		if search := c.Query("search"); search != "" {
			query = titleContains(query, search)
		}

		// 3️⃣ Fetch page
		books := []models.Book{}
		if err := query.Order("id").Offset(offset).Limit(limit).Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}
		c.JSON(http.StatusOK, books)
	}
}

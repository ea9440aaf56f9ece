// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/config"
	"github.com/junaidrashid-git/bookmarket-api/database"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/junaidrashid-git/bookmarket-api/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewDB returns a migrated in-memory database closed at the end of the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Database{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// CreateUser stores an active user. The password hash is a placeholder; tests
// that log in go through the register endpoint instead.
func CreateUser(t testing.TB, db *gorm.DB, email string, superuser bool) models.User {
	t.Helper()
	user := models.User{Email: email, HashedPassword: "x", IsActive: true, IsSuperuser: superuser}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateBook(t testing.TB, db *gorm.DB, title string, price float64, stock int) models.Book {
	t.Helper()
	book := models.Book{
		Title:         title,
		Author:        "Tester",
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func Stock(t testing.TB, db *gorm.DB, bookID uint) int {
	t.Helper()
	var book models.Book
	require.NoError(t, db.Unscoped().First(&book, bookID).Error)
	return book.StockQuantity
}

// Recorder is a notifier that keeps every message it is handed.
type Recorder struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (r *Recorder) Notify(msg notify.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *Recorder) Messages() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Message(nil), r.messages...)
}

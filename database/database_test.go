package database

import (
	"context"
	"errors"
	"testing"

	"github.com/junaidrashid-git/bookmarket-api/config"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.Database{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestStockCheckConstraint(t *testing.T) {
	db := openMemory(t)
	book := models.Book{Title: "T", Author: "A", Price: decimal.NewFromInt(1), StockQuantity: 1}
	require.NoError(t, db.Create(&book).Error)

	err := db.Model(&book).Update("stock_quantity", -1).Error
	assert.Error(t, err)

	var reloaded models.Book
	require.NoError(t, db.First(&reloaded, book.ID).Error)
	assert.Equal(t, 1, reloaded.StockQuantity)
}

func TestUniqueEmailIsTranslated(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Create(&models.User{Email: "a@b.c", HashedPassword: "x"}).Error)

	err := db.Create(&models.User{Email: "a@b.c", HashedPassword: "y"}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestSeedBooksIsIdempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	created, err := SeedBooks(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(sampleBooks), created)

	created, err = SeedBooks(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Book{}).Count(&count).Error)
	assert.Equal(t, int64(len(sampleBooks)), count)

	var hobbit models.Book
	require.NoError(t, db.Where("title = ?", "O Hobbit").First(&hobbit).Error)
	assert.Equal(t, 2, hobbit.StockQuantity)
	assert.Equal(t, "54.90", hobbit.Price.StringFixed(2))
}

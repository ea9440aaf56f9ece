package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices travel as JSON numbers, matching the catalog clients.
	decimal.MarshalJSONWithoutQuotes = true
}

type Book struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"not null;index" json:"title"`
	Author        string          `gorm:"not null" json:"author"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;check:chk_books_stock_non_negative,stock_quantity >= 0" json:"stock_quantity"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

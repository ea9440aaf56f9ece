package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Placed, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // Payment recorded
	OrderStatusShipped   OrderStatus = "shipped"   // Handed to the carrier
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before payment, stock returned
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped},
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderRef  string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_ref"`
	UserID    uint        `gorm:"not null;index" json:"-"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem is frozen at creation: ItemPrice is the book price at the moment
// the order was placed and never follows later catalog changes.
type OrderItem struct {
	OrderID   uint            `gorm:"primaryKey;autoIncrement:false" json:"-"`
	BookID    uint            `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	Line      int             `gorm:"not null" json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	ItemPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"item_price"`
	Book      Book            `gorm:"foreignKey:BookID" json:"book"`
}

// Total sums item_price × quantity over the order's items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ItemPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/junaidrashid-git/bookmarket-api/notify"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoItems       = errors.New("order must contain at least one item")
	ErrOrderNotFound = errors.New("order not found")
	ErrForbidden     = errors.New("not authorized to modify this order")
	ErrAlreadyPaid   = errors.New("order is already paid")
)

// maxQuantity bounds a line, before and after merging, so sums never overflow.
const maxQuantity = math.MaxInt32

type InvalidQuantityError struct {
	BookID   uint
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity for book %d must be between 1 and %d, got %d", e.BookID, maxQuantity, e.Quantity)
}

type BookNotFoundError struct {
	ID uint
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("book %d not found", e.ID)
}

type InsufficientStockError struct {
	Title     string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book '%s': only %d left", e.Title, e.Available)
}

type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

type Notifier interface {
	Notify(msg notify.Message)
}

type ItemRequest struct {
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
}

// Service implements order placement and the status transitions.
type Service struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
}

func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier, now: time.Now}
}

// -------- Placement --------

// placement is the unit of work for one order: every read and write goes
// through tx, and nothing is visible outside it until the transaction commits.
type placement struct {
	tx    *gorm.DB
	order models.Order
	items []models.OrderItem
	total decimal.Decimal
}

// reserve deducts the line's quantity from the book's stock and records the
// order item with the book's current price.
func (p *placement) reserve(line ItemRequest) error {
	var book models.Book
	if err := p.tx.First(&book, line.BookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &BookNotFoundError{ID: line.BookID}
		}
		return fmt.Errorf("load book %d: %w", line.BookID, err)
	}
	if book.StockQuantity < line.Quantity {
		return &InsufficientStockError{Title: book.Title, Available: book.StockQuantity}
	}

	// Conditional decrement: a concurrent order that got there first makes
	// this affect zero rows instead of driving stock negative.
	res := p.tx.Model(&models.Book{}).
		Where("id = ? AND stock_quantity >= ?", book.ID, line.Quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
	if res.Error != nil {
		return fmt.Errorf("deduct stock for book %d: %w", book.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		var current models.Book
		if err := p.tx.First(&current, book.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &BookNotFoundError{ID: book.ID}
			}
			return fmt.Errorf("reload book %d: %w", book.ID, err)
		}
		return &InsufficientStockError{Title: current.Title, Available: current.StockQuantity}
	}

	p.items = append(p.items, models.OrderItem{
		BookID:    book.ID,
		Line:      len(p.items),
		Quantity:  line.Quantity,
		ItemPrice: book.Price,
	})
	p.total = p.total.Add(book.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	return nil
}

// persist writes the order and then its items, wiring order_id explicitly.
func (p *placement) persist() error {
	if err := p.tx.Omit(clause.Associations).Create(&p.order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	for i := range p.items {
		p.items[i].OrderID = p.order.ID
	}
	if err := p.tx.Omit(clause.Associations).Create(&p.items).Error; err != nil {
		return fmt.Errorf("create order items: %w", err)
	}
	return nil
}

// mergeLines validates quantities and folds repeated book ids into one line,
// keeping the position of the first occurrence.
func mergeLines(requested []ItemRequest) ([]ItemRequest, error) {
	if len(requested) == 0 {
		return nil, ErrNoItems
	}
	index := make(map[uint]int, len(requested))
	lines := make([]ItemRequest, 0, len(requested))
	for _, item := range requested {
		if item.Quantity <= 0 || item.Quantity > maxQuantity {
			return nil, &InvalidQuantityError{BookID: item.BookID, Quantity: item.Quantity}
		}
		if i, seen := index[item.BookID]; seen {
			if lines[i].Quantity > maxQuantity-item.Quantity {
				return nil, &InvalidQuantityError{BookID: item.BookID, Quantity: item.Quantity}
			}
			lines[i].Quantity += item.Quantity
			continue
		}
		index[item.BookID] = len(lines)
		lines = append(lines, item)
	}
	return lines, nil
}

// Generate unique order reference
func newOrderRef(now time.Time) string {
	// Example: 20250908130500-<uuid4>
	return now.Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder validates every line, deducts stock and stores the order with its
// items as one transaction. Any failure leaves stock and orders untouched.
func (s *Service) PlaceOrder(ctx context.Context, user models.User, requested []ItemRequest) (*models.Order, error) {
	lines, err := mergeLines(requested)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var p *placement
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p = &placement{
			tx: tx,
			order: models.Order{
				OrderRef:  newOrderRef(now),
				UserID:    user.ID,
				Status:    models.OrderStatusPending,
				CreatedAt: now,
			},
			total: decimal.Zero,
		}
		for _, line := range lines {
			if err := p.reserve(line); err != nil {
				return err
			}
		}
		return p.persist()
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Message{
		Kind:      notify.KindOrderCreated,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Order #%d confirmation", p.order.ID),
		Body: fmt.Sprintf("Your order totalling %s was received and is awaiting payment.",
			p.total.StringFixed(2)),
		OrderID: p.order.ID,
		Total:   p.total.StringFixed(2),
	})

	return s.GetOrder(ctx, p.order.ID)
}

// -------- Reads --------

// withItems preloads items in creation order together with their books,
// including books that were deleted from the catalog since.
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line") }).
		Preload("Items.Book", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (s *Service) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := withItems(s.db.WithContext(ctx)).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return &order, nil
}

// ListOrders returns the user's orders oldest first.
func (s *Service) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	if err := withItems(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// -------- Transitions --------

// loadForUpdate fetches the order inside tx and applies the ownership check
// when owner is non-nil.
func loadForUpdate(tx *gorm.DB, id uint, owner *models.User) (*models.Order, error) {
	var order models.Order
	if err := tx.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	if owner != nil && order.UserID != owner.ID {
		return nil, ErrForbidden
	}
	return &order, nil
}

// setStatus moves the order from its current status to next, guarded on the
// current status so two racing transitions cannot both win.
func setStatus(tx *gorm.DB, order *models.Order, next models.OrderStatus) error {
	if !order.Status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: order.Status, To: next}
	}
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", next)
	if res.Error != nil {
		return fmt.Errorf("update order %d status: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		var current models.Order
		if err := tx.First(&current, order.ID).Error; err != nil {
			return fmt.Errorf("reload order %d: %w", order.ID, err)
		}
		return &InvalidTransitionError{From: current.Status, To: next}
	}
	order.Status = next
	return nil
}

// PayOrder marks a pending order as paid. Paying twice is an error.
func (s *Service) PayOrder(ctx context.Context, user models.User, id uint) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := loadForUpdate(tx, id, &user)
		if err != nil {
			return err
		}
		if order.Status == models.OrderStatusPaid {
			return ErrAlreadyPaid
		}
		if err := setStatus(tx, order, models.OrderStatusPaid); err != nil {
			var invalid *InvalidTransitionError
			if errors.As(err, &invalid) && invalid.From == models.OrderStatusPaid {
				return ErrAlreadyPaid
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// CancelOrder cancels a pending order and returns its quantities to stock.
func (s *Service) CancelOrder(ctx context.Context, user models.User, id uint) (*models.Order, error) {
	var total decimal.Decimal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := loadForUpdate(tx, id, &user)
		if err != nil {
			return err
		}
		if err := setStatus(tx, order, models.OrderStatusCancelled); err != nil {
			return err
		}
		for _, item := range order.Items {
			// Unscoped: stock goes back even if the book left the catalog.
			if err := tx.Unscoped().Model(&models.Book{}).
				Where("id = ?", item.BookID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("restore stock for book %d: %w", item.BookID, err)
			}
		}
		total = order.Total()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Message{
		Kind:      notify.KindOrderCancelled,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Order #%d cancelled", id),
		Body:      fmt.Sprintf("Your order totalling %s was cancelled.", total.StringFixed(2)),
		OrderID:   id,
		Total:     total.StringFixed(2),
	})

	return s.GetOrder(ctx, id)
}

// ShipOrder marks a paid order as shipped. Ownership is not checked; callers
// gate this behind the superuser guard.
func (s *Service) ShipOrder(ctx context.Context, id uint) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := loadForUpdate(tx, id, nil)
		if err != nil {
			return err
		}
		return setStatus(tx, order, models.OrderStatusShipped)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

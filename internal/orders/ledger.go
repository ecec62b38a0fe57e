package orders

import (
	"errors"

	"github.com/pizzaria-dev/pizzaria/internal/models"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
)

// Ledger owns orders and their line items. Every item mutation recomputes
// the parent order's total from a fresh query of the current items, inside
// the same transaction as the mutation, so a stale or partial total is
// never visible.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Create opens a new empty order for the given owner.
func (l *Ledger) Create(ownerID uint) (*models.Order, error) {
	order := models.Order{
		UserID: ownerID,
		Status: models.OrderStatusPending,
		Total:  0,
	}

	if err := l.db.Create(&order).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

// AddItem appends a line item and returns the item id and the recomputed
// order total.
func (l *Ledger) AddItem(orderID uint, quantity int, flavor, size string, unitPrice float64) (uint, float64, error) {
	var itemID uint
	var newTotal float64

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order

		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			Quantity:  quantity,
			Flavor:    flavor,
			Size:      size,
			UnitPrice: unitPrice,
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		total, err := recomputeTotal(tx, order.ID)

		if err != nil {
			return err
		}

		itemID = item.ID
		newTotal = total
		return nil
	})

	if err != nil {
		return 0, 0, err
	}

	return itemID, newTotal, nil
}

// RemoveItem deletes a line item and returns the remaining item count and
// the updated parent order.
func (l *Ledger) RemoveItem(itemID uint) (int64, *models.Order, error) {
	var remaining int64
	var order models.Order

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem

		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if err := tx.First(&order, item.OrderID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}

		total, err := recomputeTotal(tx, order.ID)

		if err != nil {
			return err
		}

		order.Total = total

		if err := tx.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&remaining).Error; err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return 0, nil, err
	}

	return remaining, &order, nil
}

// SetStatus moves an order to the given status. Transitions are
// unrestricted: the ledger records whatever the caller asks for.
func (l *Ledger) SetStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order

	if err := l.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status

	if err := l.db.Save(&order).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

// GetItem returns a single line item.
func (l *Ledger) GetItem(itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem

	if err := l.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

// Get returns an order with its items loaded.
func (l *Ledger) Get(orderID uint) (*models.Order, error) {
	var order models.Order

	if err := l.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

// ListAll returns every order in the system.
func (l *Ledger) ListAll() ([]models.Order, error) {
	var orders []models.Order

	if err := l.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

// ListByOwner returns the orders belonging to one user.
func (l *Ledger) ListByOwner(userID uint) ([]models.Order, error) {
	var orders []models.Order

	if err := l.db.Preload("Items").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

// recomputeTotal re-derives the order total from the current items and
// persists it. It always sums a fresh query rather than adjusting the
// cached total, so concurrent mutators cannot leave a stale sum behind.
func recomputeTotal(tx *gorm.DB, orderID uint) (float64, error) {
	var items []models.OrderItem

	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return 0, err
	}

	var total float64

	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("total", total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderClosed    OrderStatus = "closed"
	OrderCancelled OrderStatus = "cancelled"
)

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemServed    ItemStatus = "served"
	ItemCancelled ItemStatus = "cancelled"
)

// Order is the persisted header of one submitted cart.
type Order struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	TableID     uint64          `json:"table_id" gorm:"not null;index"`
	StaffID     uint64          `json:"staff_id" gorm:"not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(16);not null;default:'open'"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	Items       []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one persisted line of an order. Multiplicity is modelled by
// repeated rows, so Quantity is always 1 for items coming from a cart.
type OrderItem struct {
	ID         uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    uint64     `json:"order_id" gorm:"not null;index"`
	MenuItemID uint64     `json:"menu_item_id" gorm:"not null"`
	Quantity   int        `json:"quantity" gorm:"not null;default:1"`
	Notes      *string    `json:"notes" gorm:"type:text"`
	Status     ItemStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	OrderID     uint64          `json:"orderId"`
	TableID     uint64          `json:"tableId"`
	TableLabel  string          `json:"tableLabel"`
	StaffID     uint64          `json:"staffId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

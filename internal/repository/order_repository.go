package repository

import (
	"context"
	"errors"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// OrderRepository persists order headers and their line items. CreateOrder
// must fill order.ID with the id assigned by the store.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	// CreateOrderItems writes the batch as a unit: either every item is
	// stored or none is.
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error
	// CreateOrderWithItems writes header and items in one atomic request.
	CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	DeleteOrder(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByTable(ctx context.Context, tableID uint64) ([]domain.Order, error)
}

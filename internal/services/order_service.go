package services

import (
	"context"
	"errors"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderService answers read-side questions about stored orders.
type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(r repository.OrderRepository) *OrderService {
	return &OrderService{repo: r}
}

func (u *OrderService) GetOrderByID(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// GetOrdersByTable returns the table's orders, newest first. A table with
// no orders yields an empty slice.
func (u *OrderService) GetOrdersByTable(ctx context.Context, tableID uint64) ([]domain.Order, error) {
	o, err := u.repo.FindByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if o == nil {
		return []domain.Order{}, nil
	}
	return o, nil
}

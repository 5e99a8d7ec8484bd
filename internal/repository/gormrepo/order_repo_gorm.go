// Package gormrepo implements the repository interfaces on gorm. It is
// dialect agnostic; the connection decides between MySQL and Postgres.
package gormrepo

import (
	"context"
	"errors"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const itemBatchSize = 100

var errNoOrderID = errors.New("failed to assign order ID")

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepository(db *gorm.DB, log *logger.Logger) repository.OrderRepository {
	return &orderRepo{db: db, log: log}
}

func (r *orderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(order)
	if result.Error != nil {
		r.log.Error("order_create_failed", "database save error", result.Error)
		return result.Error
	}

	if order.ID == 0 {
		r.log.Warn("order_create_failed", "order saved but ID is still 0", "rows_affected", result.RowsAffected)
		return errNoOrderID
	}

	r.log.Debug("order_created", "order saved", "order_id", order.ID)
	return nil
}

// CreateOrderItems inserts the batch in chunks inside one transaction.
func (r *orderRepo) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertItems(tx, items)
	})
	if err != nil {
		r.log.Error("order_items_create_failed", "batch save error", err, "count", len(items))
		return err
	}

	r.log.Debug("order_items_created", "batch saved", "count", len(items))
	return nil
}

func (r *orderRepo) CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if order.ID == 0 {
			return errNoOrderID
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		return insertItems(tx, items)
	})
	if err != nil {
		order.ID = 0
		r.log.Error("order_create_failed", "transactional order save error", err, "count", len(items))
		return err
	}

	r.log.Debug("order_created", "order and items saved", "order_id", order.ID, "count", len(items))
	return nil
}

func insertItems(tx *gorm.DB, items []domain.OrderItem) error {
	for i := 0; i < len(items); i += itemBatchSize {
		end := i + itemBatchSize
		if end > len(items) {
			end = len(items)
		}

		batch := items[i:end]
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) DeleteOrder(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&domain.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("order_find_failed", "FindByID error", err, "order_id", id)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByTable(ctx context.Context, tableID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("table_id = ?", tableID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		r.log.Error("order_find_failed", "FindByTable error", err, "table_id", tableID)
		return nil, err
	}
	return out, nil
}

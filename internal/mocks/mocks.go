package mocks

import (
	"context"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockTableRepository struct {
	mock.Mock
}

type MockCatalogRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockSink struct {
	mock.Mock
}

type MockTableRegistry struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message any) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockSink) Notify(message string, severity notify.Severity) {
	m.Called(message, severity)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteOrder(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByTable(ctx context.Context, tableID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockTableRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Table), args.Error(1)
}

func (m *MockTableRepository) UpdateTableStatus(ctx context.Context, id uint64, status domain.TableStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListActiveMenu(ctx context.Context) ([]domain.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MockCatalogRepository) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func (m *MockTableRegistry) Current() (domain.Table, bool) {
	args := m.Called()
	return args.Get(0).(domain.Table), args.Bool(1)
}

func (m *MockTableRegistry) UpdateStatus(ctx context.Context, tableID uint64, status domain.TableStatus) error {
	args := m.Called(ctx, tableID, status)
	return args.Error(0)
}

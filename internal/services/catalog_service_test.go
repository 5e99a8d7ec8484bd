package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memCache stores JSON like the redis cache does.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("cache unavailable")
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func newCatalogFixture() (*CatalogService, *mocks.MockCatalogRepository, *mocks.MockTableRepository, *memCache) {
	catalog := new(mocks.MockCatalogRepository)
	tables := new(mocks.MockTableRepository)
	c := newMemCache()
	return NewCatalogService(catalog, tables, c, time.Minute, logger.Discard()), catalog, tables, c
}

func TestCatalogService_ListMenu_ReadThrough(t *testing.T) {
	svc, catalog, _, c := newCatalogFixture()
	catalog.On("ListActiveMenu", mock.Anything).Return([]domain.MenuItem{espresso, latte}, nil).Once()

	first, err := svc.ListMenu(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.True(t, c.has(menuCacheKey))

	second, err := svc.ListMenu(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first[1].Name, second[1].Name)
	assert.True(t, latte.Price.Equal(second[1].Price))

	catalog.AssertNumberOfCalls(t, "ListActiveMenu", 1)
}

func TestCatalogService_CacheErrorFallsBackToStore(t *testing.T) {
	svc, catalog, _, c := newCatalogFixture()
	c.failGet = true
	catalog.On("ListStaff", mock.Anything).Return([]domain.Staff{{ID: 1, Name: "Ana", IsActive: true}}, nil).Twice()

	for i := 0; i < 2; i++ {
		staff, err := svc.ListStaff(context.Background())
		require.NoError(t, err)
		assert.Len(t, staff, 1)
	}
	catalog.AssertExpectations(t)
}

func TestCatalogService_MenuItem(t *testing.T) {
	tests := []struct {
		name          string
		id            uint64
		setupMocks    func(*mocks.MockCatalogRepository)
		expectedError error
		expectedName  string
	}{
		{
			name: "found",
			id:   2,
			setupMocks: func(m *mocks.MockCatalogRepository) {
				m.On("ListActiveMenu", mock.Anything).Return([]domain.MenuItem{espresso, latte}, nil)
			},
			expectedName: "Latte",
		},
		{
			name: "not on the menu",
			id:   99,
			setupMocks: func(m *mocks.MockCatalogRepository) {
				m.On("ListActiveMenu", mock.Anything).Return([]domain.MenuItem{espresso}, nil)
			},
			expectedError: ErrMenuItemNotFound,
		},
		{
			name: "store error",
			id:   1,
			setupMocks: func(m *mocks.MockCatalogRepository) {
				m.On("ListActiveMenu", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, catalog, _, _ := newCatalogFixture()
			tt.setupMocks(catalog)

			item, err := svc.MenuItem(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedName, item.Name)
			}
			catalog.AssertExpectations(t)
		})
	}
}

func TestCatalogService_ActiveStaff(t *testing.T) {
	svc, catalog, _, _ := newCatalogFixture()
	catalog.On("ListStaff", mock.Anything).Return([]domain.Staff{
		{ID: 1, Name: "Ana", IsActive: true},
		{ID: 2, Name: "Bruno", IsActive: false},
		{ID: 3, Name: "Carla", IsActive: true},
	}, nil).Once()

	active, err := svc.ActiveStaff(context.Background())

	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Ana", active[0].Name)
	assert.Equal(t, "Carla", active[1].Name)
}

func TestCatalogService_UpdateTableStatusInvalidatesTables(t *testing.T) {
	svc, _, tables, c := newCatalogFixture()
	tables.On("ListTables", mock.Anything).Return([]domain.Table{table3}, nil).Twice()
	tables.On("UpdateTableStatus", mock.Anything, uint64(3), domain.TableOccupied).Return(nil).Once()

	_, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	assert.True(t, c.has(tablesCacheKey))

	require.NoError(t, svc.UpdateTableStatus(context.Background(), 3, domain.TableOccupied))
	assert.False(t, c.has(tablesCacheKey))

	_, err = svc.ListTables(context.Background())
	require.NoError(t, err)
	tables.AssertExpectations(t)
}

func TestCatalogService_UpdateTableStatusError(t *testing.T) {
	svc, _, tables, c := newCatalogFixture()
	tables.On("ListTables", mock.Anything).Return([]domain.Table{table3}, nil).Once()
	tables.On("UpdateTableStatus", mock.Anything, uint64(3), domain.TableOccupied).Return(errors.New("row locked")).Once()

	_, err := svc.ListTables(context.Background())
	require.NoError(t, err)

	err = svc.UpdateTableStatus(context.Background(), 3, domain.TableOccupied)
	assert.EqualError(t, err, "row locked")
	assert.True(t, c.has(tablesCacheKey))
}

func TestCatalogService_Warmup(t *testing.T) {
	svc, catalog, tables, c := newCatalogFixture()
	catalog.On("ListActiveMenu", mock.Anything).Return([]domain.MenuItem{espresso}, nil).Once()
	catalog.On("ListStaff", mock.Anything).Return(nil, nil).Once()
	tables.On("ListTables", mock.Anything).Return([]domain.Table{table3}, nil).Once()

	require.NoError(t, svc.Warmup(context.Background()))

	assert.True(t, c.has(menuCacheKey))
	assert.True(t, c.has(staffCacheKey))
	assert.True(t, c.has(tablesCacheKey))

	staff, err := svc.ListStaff(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, staff)
	assert.Empty(t, staff)
}

func TestCatalogService_WarmupError(t *testing.T) {
	svc, catalog, tables, _ := newCatalogFixture()
	catalog.On("ListActiveMenu", mock.Anything).Return(nil, errors.New("menu unavailable")).Once()
	catalog.On("ListStaff", mock.Anything).Return([]domain.Staff{}, nil).Maybe()
	tables.On("ListTables", mock.Anything).Return([]domain.Table{}, nil).Maybe()

	err := svc.Warmup(context.Background())

	assert.EqualError(t, err, "menu unavailable")
}

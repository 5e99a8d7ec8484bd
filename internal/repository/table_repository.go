package repository

import (
	"context"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
)

type TableRepository interface {
	// ListTables returns every table ordered by label.
	ListTables(ctx context.Context) ([]domain.Table, error)
	UpdateTableStatus(ctx context.Context, id uint64, status domain.TableStatus) error
}

type CatalogRepository interface {
	// ListActiveMenu returns active menu items ordered by name.
	ListActiveMenu(ctx context.Context) ([]domain.MenuItem, error)
	// ListStaff returns all staff ordered by name.
	ListStaff(ctx context.Context) ([]domain.Staff, error)
}

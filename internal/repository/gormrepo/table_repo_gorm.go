package gormrepo

import (
	"context"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"

	"gorm.io/gorm"
)

type tableRepo struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) repository.TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) ListTables(ctx context.Context) ([]domain.Table, error) {
	var out []domain.Table
	err := r.db.WithContext(ctx).Order("label").Find(&out).Error
	return out, err
}

func (r *tableRepo) UpdateTableStatus(ctx context.Context, id uint64, status domain.TableStatus) error {
	// MySQL reports zero affected rows when the status is unchanged, so
	// existence is checked separately.
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Table{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return r.db.WithContext(ctx).Model(&domain.Table{}).Where("id = ?", id).Update("status", status).Error
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListActiveMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&out).Error
	return out, err
}

func (r *catalogRepo) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	var out []domain.Staff
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

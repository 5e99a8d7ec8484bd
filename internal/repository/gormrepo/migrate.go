package gormrepo

import (
	"github.com/Axalon174/coffee-shop-manager/internal/domain"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Table{},
		&domain.MenuItem{},
		&domain.Staff{},
		&domain.Order{},
		&domain.OrderItem{},
	)
}

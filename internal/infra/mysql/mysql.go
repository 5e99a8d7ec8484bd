package mysql

import (
	"github.com/Axalon174/coffee-shop-manager/internal/config"
	"github.com/Axalon174/coffee-shop-manager/internal/repository/gormrepo"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func NewMySQL(cfg config.MySQLConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := gormrepo.AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

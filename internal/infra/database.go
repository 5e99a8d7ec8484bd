package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/config"
	"github.com/Axalon174/coffee-shop-manager/internal/infra/mysql"
	"github.com/Axalon174/coffee-shop-manager/internal/infra/postgres"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase connects and migrates the SQL store selected by DB_DRIVER.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := GormLogLevel(cfg.LogLevel)

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DatabaseDriver {
	case config.DriverMySQL:
		db, err = mysql.NewMySQL(cfg.MySQL, level)
	case config.DriverPostgres:
		db, err = postgres.NewPostgres(cfg.DatabaseURL, level)
	default:
		return nil, fmt.Errorf("db: driver %q is not a SQL driver", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db: pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	return db, nil
}

func GormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

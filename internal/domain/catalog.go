package domain

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID       uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string          `json:"name" gorm:"type:varchar(128);not null"`
	Category string          `json:"category" gorm:"type:varchar(64)"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsActive bool            `json:"is_active" gorm:"not null"`
}

type Staff struct {
	ID       uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"type:varchar(128);not null"`
	Role     string `json:"role" gorm:"type:varchar(32)"`
	IsActive bool   `json:"is_active" gorm:"not null"`
}

func (MenuItem) TableName() string { return "menu_items" }
func (Staff) TableName() string    { return "staff" }

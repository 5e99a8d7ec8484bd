package domain

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

type Table struct {
	ID       uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Label    string      `json:"label" gorm:"type:varchar(64);not null;uniqueIndex"`
	Capacity int         `json:"capacity"`
	Status   TableStatus `json:"status" gorm:"type:varchar(16);not null;default:'available'"`
}

func (Table) TableName() string { return "restaurant_tables" }

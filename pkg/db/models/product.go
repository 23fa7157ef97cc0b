package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a supplier catalog entry. Price is the current catalog price;
// carts and orders snapshot it at add time.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SupplierID  uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Image       *string         `gorm:"column:image"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Description *string         `gorm:"column:description"`
	Available   bool            `gorm:"column:available;not null;default:true"`
	Supplier    *Supplier       `gorm:"foreignKey:SupplierID"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

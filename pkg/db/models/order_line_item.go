package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem is a denormalized snapshot of a PanierItem taken at
// confirmation. PriceAtTime is copied verbatim from the panier item, and the
// supplier identity is stamped so suppliers can query their own line items.
type OrderLineItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName  string          `gorm:"column:product_name;not null"`
	SupplierID   uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null;index"`
	SupplierName string          `gorm:"column:supplier_name;not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	PriceAtTime  decimal.Decimal `gorm:"column:price_at_time;type:numeric(10,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

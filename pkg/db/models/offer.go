package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer is a supplier promotion applying a percentage discount to a set of
// products between two dates.
type Offer struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SupplierID         uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null;index"`
	Name               string          `gorm:"column:name;not null"`
	Description        *string         `gorm:"column:description"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null"`
	StartDate          time.Time       `gorm:"column:start_date;not null"`
	EndDate            time.Time       `gorm:"column:end_date;not null"`
	Active             bool            `gorm:"column:active;not null;default:true"`
	Products           []Product       `gorm:"many2many:offer_products"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

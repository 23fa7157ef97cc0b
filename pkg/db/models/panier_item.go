package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PanierItem is one (product, quantity) line in a panier. PriceAtTime is the
// catalog price snapshotted when the product was added; a (panier, product)
// pair is unique and re-adds merge by summing quantity.
type PanierItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PanierID    uuid.UUID       `gorm:"column:panier_id;type:uuid;not null;uniqueIndex:ux_panier_product"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_panier_product"`
	Quantity    int             `gorm:"column:quantity;not null"`
	PriceAtTime decimal.Decimal `gorm:"column:price_at_time;type:numeric(10,2);not null"`
	Product     *Product        `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

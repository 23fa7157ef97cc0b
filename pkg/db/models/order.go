package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/unideals/unideals-backend/pkg/enums"
)

// Order is the immutable record created from a confirmed panier. Amounts are
// computed once at confirmation; only Status changes afterwards.
type Order struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	ClientID     uuid.UUID              `gorm:"column:client_id;type:uuid;not null;index"`
	PanierID     uuid.UUID              `gorm:"column:panier_id;type:uuid;not null"`
	Subtotal     decimal.Decimal        `gorm:"column:subtotal;type:numeric(10,2);not null"`
	DeliveryFee  decimal.Decimal        `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	TotalAmount  decimal.Decimal        `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status       enums.OrderStatus      `gorm:"column:status;not null;default:'pending'"`
	LocationType enums.DeliveryLocation `gorm:"column:location_type;not null"`
	Etage        *string                `gorm:"column:etage"`
	Address      *string                `gorm:"column:address"`
	Phone        string                 `gorm:"column:phone;not null"`
	ClientName   string                 `gorm:"column:client_name;not null"`
	Items        []OrderLineItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/unideals/unideals-backend/pkg/enums"
)

// Client is a student account. The delivery columns remember the last
// delivery details the client confirmed with.
type Client struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	Email        string                  `gorm:"column:email;not null;uniqueIndex"`
	Name         *string                 `gorm:"column:name"`
	PasswordHash *string                 `gorm:"column:password_hash"`
	Verified     bool                    `gorm:"column:verified;not null;default:false"`
	PanierID     *uuid.UUID              `gorm:"column:panier_id;type:uuid"`
	Phone        *string                 `gorm:"column:phone"`
	LocationType *enums.DeliveryLocation `gorm:"column:location_type"`
	Etage        *string                 `gorm:"column:etage"`
	Address      *string                 `gorm:"column:address"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

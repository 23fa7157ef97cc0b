package models

import (
	"time"

	"github.com/google/uuid"
)

// Panier is a client's in-progress cart. A client has exactly one active
// panier at a time (clients.panier_id); confirmed paniers are kept emptied
// so orders can reference their originating cart.
type Panier struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	ClientID  uuid.UUID    `gorm:"column:client_id;type:uuid;not null;index"`
	Items     []PanierItem `gorm:"foreignKey:PanierID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
}

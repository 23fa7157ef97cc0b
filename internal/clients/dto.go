package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/unideals/unideals-backend/pkg/db/models"
)

// ClientDTO is the transport shape that omits sensitive credentials.
type ClientDTO struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         *string    `json:"name,omitempty"`
	Verified     bool       `json:"verified"`
	PanierID     *uuid.UUID `json:"panier_id,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	LocationType *string    `json:"location_type,omitempty"`
	Etage        *string    `json:"etage,omitempty"`
	Address      *string    `json:"address,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FromModel converts a persisted client into its transport shape.
func FromModel(c *models.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	dto := &ClientDTO{
		ID:        c.ID,
		Email:     c.Email,
		Name:      c.Name,
		Verified:  c.Verified,
		PanierID:  c.PanierID,
		Phone:     c.Phone,
		Etage:     c.Etage,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
	if c.LocationType != nil {
		loc := c.LocationType.String()
		dto.LocationType = &loc
	}
	return dto
}

package suppliers

import (
	"time"

	"github.com/google/uuid"

	"github.com/unideals/unideals-backend/pkg/db/models"
)

// SupplierDTO is the transport shape that omits credentials.
type SupplierDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel converts a persisted supplier into its transport shape.
func FromModel(s *models.Supplier) *SupplierDTO {
	if s == nil {
		return nil
	}
	return &SupplierDTO{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}

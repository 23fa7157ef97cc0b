package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/unideals/unideals-backend/pkg/db/models"
)

// ProductDTO is the transport shape of a catalog entry.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Name        string          `json:"name"`
	Image       *string         `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FromModel converts a persisted product into its transport shape.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		Name:        p.Name,
		Image:       p.Image,
		Price:       p.Price,
		Description: p.Description,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
	}
}

// FromModels converts a slice of products, preserving order.
func FromModels(items []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos
}

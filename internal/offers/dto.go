package offers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/unideals/unideals-backend/internal/products"
	"github.com/unideals/unideals-backend/pkg/db/models"
)

// OfferDTO is the transport shape of a promotion with its product set.
type OfferDTO struct {
	ID                 uuid.UUID             `json:"id"`
	SupplierID         uuid.UUID             `json:"supplier_id"`
	Name               string                `json:"name"`
	Description        *string               `json:"description,omitempty"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
	StartDate          time.Time             `json:"start_date"`
	EndDate            time.Time             `json:"end_date"`
	Active             bool                  `json:"active"`
	Products           []products.ProductDTO `json:"products"`
	CreatedAt          time.Time             `json:"created_at"`
}

// FromModel converts a persisted offer into its transport shape.
func FromModel(o *models.Offer) *OfferDTO {
	if o == nil {
		return nil
	}
	return &OfferDTO{
		ID:                 o.ID,
		SupplierID:         o.SupplierID,
		Name:               o.Name,
		Description:        o.Description,
		DiscountPercentage: o.DiscountPercentage,
		StartDate:          o.StartDate,
		EndDate:            o.EndDate,
		Active:             o.Active,
		Products:           products.FromModels(o.Products),
		CreatedAt:          o.CreatedAt,
	}
}

// FromModels converts a slice of offers, preserving order.
func FromModels(items []models.Offer) []OfferDTO {
	dtos := make([]OfferDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos
}

package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/unideals/unideals-backend/pkg/db/models"
)

// PanierItemDTO is one line of the cart with its running line total.
type PanierItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
	LineTotal   decimal.Decimal `json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PanierDTO is the transport shape of the active cart.
type PanierDTO struct {
	ID        uuid.UUID       `json:"id"`
	Items     []PanierItemDTO `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromModel converts a persisted panier into its transport shape, computing
// line totals and the subtotal from the snapshotted prices.
func FromModel(p *models.Panier) *PanierDTO {
	if p == nil {
		return nil
	}
	dto := &PanierDTO{
		ID:        p.ID,
		Items:     make([]PanierItemDTO, 0, len(p.Items)),
		Subtotal:  decimal.Zero,
		CreatedAt: p.CreatedAt,
	}
	for i := range p.Items {
		item := &p.Items[i]
		line := PanierItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
			LineTotal:   item.PriceAtTime.Mul(decimal.NewFromInt(int64(item.Quantity))),
			CreatedAt:   item.CreatedAt,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.Image = item.Product.Image
		}
		dto.Items = append(dto.Items, line)
		dto.Subtotal = dto.Subtotal.Add(line.LineTotal)
	}
	return dto
}

package controllers

import (
	"net/http"

	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/internal/offers"
	"github.com/unideals/unideals-backend/internal/products"
	"github.com/unideals/unideals-backend/pkg/logger"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

// BrowseProducts lists purchasable products grouped by supplier.
func BrowseProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := pagination.FromRequest(r)

		result, err := svc.Browse(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		suppliers := make([]map[string]any, 0, len(result.Suppliers))
		for _, group := range result.Suppliers {
			suppliers = append(suppliers, map[string]any{
				"supplier_id":   group.SupplierID,
				"supplier_name": group.SupplierName,
				"products":      products.FromModels(group.Products),
			})
		}
		responses.WriteSuccess(w, map[string]any{
			"suppliers": suppliers,
			"meta":      result.Meta,
		})
	}
}

// BrowseOffers lists currently running promotions.
func BrowseOffers(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"offers": offers.FromModels(active)})
	}
}

package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/api/validators"
	"github.com/unideals/unideals-backend/internal/products"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type createProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Image       *string         `json:"image" validate:"omitempty,url"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	Available   *bool           `json:"available"`
}

type updateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Image       *string          `json:"image" validate:"omitempty,url"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Available   *bool            `json:"available"`
}

// SupplierProductList lists the authenticated supplier's catalog.
func SupplierProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		items, err := svc.ListForSupplier(r.Context(), supplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products.FromModels(items)})
	}
}

// SupplierProductCreate adds a product to the supplier's catalog.
func SupplierProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		available := true
		if body.Available != nil {
			available = *body.Available
		}

		product, err := svc.Create(r.Context(), supplierID, products.CreateProductInput{
			Name:        body.Name,
			Image:       body.Image,
			Price:       body.Price,
			Description: body.Description,
			Available:   available,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "", products.FromModel(product))
	}
}

// SupplierProductUpdate applies partial updates to an owned product.
func SupplierProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		productID, err := validators.UUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), supplierID, productID, products.UpdateProductInput{
			Name:        body.Name,
			Image:       body.Image,
			Price:       body.Price,
			Description: body.Description,
			Available:   body.Available,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products.FromModel(product))
	}
}

// SupplierProductDelete removes an owned product from the catalog.
func SupplierProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		productID, err := validators.UUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), supplierID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, "product deleted", nil)
	}
}

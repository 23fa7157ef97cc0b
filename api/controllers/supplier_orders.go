package controllers

import (
	"net/http"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/api/validators"
	"github.com/unideals/unideals-backend/internal/orders"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/logger"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted delivered cancelled"`
}

// SupplierOrders lists orders containing the supplier's products; each order
// carries only that supplier's line items.
func SupplierOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())
		params := pagination.FromRequest(r)

		list, err := svc.ListForSupplier(r.Context(), supplierID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders.FromList(list))
	}
}

// SupplierOrderStatus moves an order through its lifecycle.
func SupplierOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), supplierID, orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders.FromModel(order))
	}
}

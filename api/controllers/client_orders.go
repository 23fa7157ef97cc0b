package controllers

import (
	"net/http"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/internal/orders"
	"github.com/unideals/unideals-backend/pkg/logger"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

// ClientOrders lists the client's order history, newest first.
func ClientOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())
		params := pagination.FromRequest(r)

		list, err := svc.ListForClient(r.Context(), clientID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders.FromList(list))
	}
}

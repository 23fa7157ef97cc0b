package controllers

import (
	"net/http"

	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/api/validators"
	"github.com/unideals/unideals-backend/internal/auth"
	"github.com/unideals/unideals-backend/internal/suppliers"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type supplierRegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone" validate:"omitempty,min=6,max=30"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
}

// SupplierRegister creates a supplier account and returns a session.
func SupplierRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body supplierRegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.RegisterSupplier(r.Context(), auth.RegisterSupplierInput{
			Name:     body.Name,
			Email:    body.Email,
			Password: body.Password,
			Phone:    body.Phone,
			Address:  body.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "", map[string]any{
			"token":    session.Token,
			"supplier": suppliers.FromModel(session.Supplier),
		})
	}
}

// SupplierLogin authenticates a supplier account.
func SupplierLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.LoginSupplier(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"token":    session.Token,
			"supplier": suppliers.FromModel(session.Supplier),
		})
	}
}

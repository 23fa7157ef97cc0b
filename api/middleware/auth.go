package middleware

import (
	"net/http"
	"strings"

	"github.com/unideals/unideals-backend/api/responses"
	pkgauth "github.com/unideals/unideals-backend/pkg/auth"
	"github.com/unideals/unideals-backend/pkg/config"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/logger"
)

// Auth validates a bearer token for the given role and seeds the request
// context with the actor identity. Client tokens never open supplier routes
// and vice versa.
func Auth(cfg config.JWTConfig, role enums.ActorRole, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.Role != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "access denied"))
				return
			}

			ctx := WithActor(r.Context(), claims.ActorID, string(claims.Role))
			if logg != nil {
				switch role {
				case enums.RoleClient:
					ctx = logg.WithClientID(ctx, claims.ActorID.String())
				case enums.RoleSupplier:
					ctx = logg.WithSupplierID(ctx, claims.ActorID.String())
				}
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package controllers

import (
	"net/http"

	"github.com/angelmondragon/marketloop-backend/api/middleware"
	"github.com/angelmondragon/marketloop-backend/api/responses"
	usersvc "github.com/angelmondragon/marketloop-backend/internal/users"
	pkgerrors "github.com/angelmondragon/marketloop-backend/pkg/errors"
	"github.com/angelmondragon/marketloop-backend/pkg/logger"
)

// CurrentUser mirrors the identity token's profile into the users table and
// returns the stored row. First contact creates the user; later calls refresh
// the profile fields from the token.
func CurrentUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil || claims.UserID() == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		user, err := svc.UpsertFromIdentity(r.Context(), usersvc.UpsertUserDTO{
			ID:              claims.UserID(),
			Email:           claims.Email,
			FirstName:       claims.FirstName,
			LastName:        claims.LastName,
			ProfileImageURL: claims.ProfileImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

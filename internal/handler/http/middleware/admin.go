package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/auth"
	"github.com/presenze-hr/presenze-backend-go/internal/handler/http/response"
)

var errAdminRequired = errors.New("administrator privilege required")

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !admin || !ok {
			response.Forbidden(w, errAdminRequired.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

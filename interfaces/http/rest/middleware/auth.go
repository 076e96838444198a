package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
)

// Authenticate requires a valid Bearer token and stores the caller's
// identity in the request context.
func Authenticate(validator *auth.JWTValidator, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("Not authorized, no token"))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("Invalid authorization header format"))
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Token rejected", zap.Error(err))
				message := "Not authorized, token failed"
				if errors.Is(err, auth.ErrExpiredToken) {
					message = "Not authorized, token expired"
				}
				errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError(message))
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID: claims.UserID(),
				Email:  claims.Email,
				Name:   claims.Name,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

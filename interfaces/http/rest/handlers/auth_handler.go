package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
)

// AuthHandler reports the identity carried by the caller's token. Account
// registration and login live in the identity provider.
type AuthHandler struct {
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

func NewAuthHandler(errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{errors: errorHandler, logger: logger}
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("Not authorized"))
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"user": map[string]string{
			"id":    user.UserID,
			"name":  user.Name,
			"email": user.Email,
		},
	}, h.logger)
}

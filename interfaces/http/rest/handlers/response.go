package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
)

// envelope is the JSON object every successful response is written as
type envelope map[string]interface{}

func respondJSON(w http.ResponseWriter, status int, body envelope, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func callerID(r *http.Request) (string, error) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil || user.UserID == "" {
		return "", pkgerrors.NewUnauthorizedError("Not authorized")
	}
	return user.UserID, nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return pkgerrors.NewValidationError("Invalid request body").WithCode(pkgerrors.CodeInvalidBody)
	}
	return nil
}

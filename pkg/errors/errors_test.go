package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppError_TypeHelpers(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		check  func(error) bool
		status int
	}{
		{"validation", NewValidationError("title is required"), IsValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("note"), IsNotFound, http.StatusNotFound},
		{"forbidden", NewForbiddenError(""), IsForbidden, http.StatusForbidden},
		{"conflict", NewConflictError("Category already exists"), IsConflict, http.StatusConflict},
		{"internal", NewInternalError("boom"), IsInternal, http.StatusInternalServerError},
		{"database", NewDatabaseError("find notes", stderrors.New("socket closed")), IsInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.status, GetAppError(tt.err).HTTPStatus)

			wrapped := fmt.Errorf("command handler failed: %w", tt.err)
			assert.True(t, tt.check(wrapped), "type must survive fmt wrapping")
		})
	}
}

func TestNotFoundAndForbiddenAreDistinct(t *testing.T) {
	nf := NewNotFoundError("note")
	fb := NewForbiddenError("Not authorized to access this note")

	assert.False(t, IsForbidden(nf))
	assert.False(t, IsNotFound(fb))
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "ignored"))
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		err := Wrap(NewNotFoundError("note"), "failed to load note")
		assert.True(t, IsNotFound(err))
	})

	t.Run("database errors become internal", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := Wrap(NewDatabaseError("get note", cause), "failed to load note")
		require.True(t, IsType(err, ErrorTypeInternal))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		err := Wrap(stderrors.New("eof"), "failed to decode")
		appErr := GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "failed to decode", appErr.Message)
	})
}

func TestErrorHandler_Handle(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)

	t.Run("client errors keep their message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)

		h.Handle(rec, req, NewForbiddenError("Not authorized to access this note"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "FORBIDDEN", body.Type)
		assert.Equal(t, "Not authorized to access this note", body.Message)
	})

	t.Run("storage errors are not leaked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)

		h.Handle(rec, req, NewDatabaseError("find notes", stderrors.New("mongo: no reachable servers")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "mongo")
		assert.Contains(t, rec.Body.String(), genericInternalMessage)
	})

	t.Run("non app errors are internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)

		h.Handle(rec, req, stderrors.New("unexpected"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "unexpected")
	})
}

func TestErrorHandler_MiddlewareRecoversPanics(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestErrorHandler_HandleStatus(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)

	tests := []struct {
		status   int
		wantType ErrorType
	}{
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusMethodNotAllowed, ErrorTypeInternal},
		{http.StatusServiceUnavailable, ErrorTypeUnavailable},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/x", nil), tt.status, "nope")

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, string(tt.wantType), body.Type)
	}
}

func TestDuplicateCategoryError(t *testing.T) {
	err := NewDuplicateCategoryError()

	assert.True(t, IsConflict(err))
	assert.Equal(t, CodeDuplicateCategory, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
}

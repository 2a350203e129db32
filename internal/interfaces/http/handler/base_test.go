package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/invoicehub/backend/internal/domain/shared"
)

func TestBaseHandler_HandleError_DomainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, "ERR_INSUFFICIENT_STOCK"},
		{"duplicate number", shared.ErrDuplicateNumber, http.StatusConflict, "ERR_CONFLICT"},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, "ERR_ALREADY_EXISTS"},
		{"invalid credentials", shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password"), http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"domain validation", shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters"), http.StatusBadRequest, "ERR_INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestBaseHandler_HandleError_WrappedDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, fmt.Errorf("loading invoice: %w", shared.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBaseHandler_HandleError_UnknownErrorHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, errors.New("pq: connection refused on 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
}

func TestBaseHandler_HandleError_NilIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}

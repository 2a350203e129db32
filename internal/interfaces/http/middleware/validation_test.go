package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type discountRequest struct {
	DiscountType string `json:"discount_type" binding:"omitempty,discount_type"`
}

func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	r := gin.New()
	r.POST("/echo", func(c *gin.Context) {
		var req discountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestDiscountTypeValidator_Accepts(t *testing.T) {
	r := newValidationRouter()

	for _, v := range []string{"PERCENTAGE", "ITEM-WISE", "FIXED-AMOUNT"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo",
			strings.NewReader(`{"discount_type":"`+v+`"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, v)
	}
}

func TestDiscountTypeValidator_Rejects(t *testing.T) {
	r := newValidationRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo",
		strings.NewReader(`{"discount_type":"HALF-OFF"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "discount_type")
	assert.Contains(t, w.Body.String(), "PERCENTAGE")
}

func TestDiscountTypeValidator_EmptyAllowed(t *testing.T) {
	r := newValidationRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

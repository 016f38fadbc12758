package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantia/storefront/internal/interfaces/http/dto"
)

type validationTestRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Quantity int    `json:"quantity" binding:"required,gte=1,lte=99"`
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req validationTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("invalid payload returns field details", func(t *testing.T) {
		body := strings.NewReader(`{"email": "not-an-email", "quantity": 0}`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeValidation)
		// Field names come from json tags, not struct field names
		assert.Contains(t, w.Body.String(), `"email"`)
		assert.Contains(t, w.Body.String(), "Invalid email format")
	})

	t.Run("valid payload passes", func(t *testing.T) {
		body := strings.NewReader(`{"email": "shopper@verdantia.example", "quantity": 2}`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSlugValidation(t *testing.T) {
	SetupValidator()

	type slugRequest struct {
		Slug string `json:"slug" binding:"required,slug"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req slugRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		slug       string
		wantStatus int
	}{
		{"organic-cotton-tee", http.StatusOK},
		{"v2-collection", http.StatusOK},
		{"Organic-Cotton", http.StatusBadRequest},
		{"double--hyphen", http.StatusBadRequest},
		{"-leading", http.StatusBadRequest},
		{"trailing-", http.StatusBadRequest},
		{"with space", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			body := strings.NewReader(`{"slug": "` + tt.slug + `"}`)
			req := httptest.NewRequest(http.MethodPost, "/test", body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Empty(t, resp.Error.Details)
}

func TestGetValidationMessage(t *testing.T) {
	SetupValidator()

	router := gin.New()

	var capturedResp dto.Response
	router.POST("/test", func(c *gin.Context) {
		var req validationTestRequest
		err := c.ShouldBindJSON(&req)
		require.Error(t, err)
		capturedResp = FormatValidationErrors(err, "")
		c.Status(http.StatusBadRequest)
	})

	body := strings.NewReader(`{"quantity": 150}`)
	req := httptest.NewRequest(http.MethodPost, "/test", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.NotNil(t, capturedResp.Error)
	messages := map[string]string{}
	for _, d := range capturedResp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", messages["email"])
	assert.Equal(t, "Must be less than or equal to 99", messages["quantity"])
}

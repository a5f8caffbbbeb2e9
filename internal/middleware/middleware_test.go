package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lexreader/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAPIKeyRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := testutil.NewTestLogger()
	router.Use(RequestLogger(logger), APIKey(key, logger))
	router.GET("/books", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	return router
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		method         string
		header         string
		expectedStatus int
	}{
		{
			name:           "disabled",
			key:            "",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid key",
			key:            "s3cret",
			method:         http.MethodGet,
			header:         "Bearer s3cret",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			key:            "s3cret",
			method:         http.MethodGet,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong key",
			key:            "s3cret",
			method:         http.MethodGet,
			header:         "Bearer nope",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			key:            "s3cret",
			method:         http.MethodGet,
			header:         "Basic s3cret",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAPIKeyRouter(tt.key)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, "/books", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

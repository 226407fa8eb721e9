package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-dispatch/internal/api/models"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(panicWith any) *gin.Engine {
		router := gin.New()
		router.Use(ErrorHandler())
		router.GET("/boom", func(c *gin.Context) {
			panic(panicWith)
		})
		return router
	}

	do := func(t *testing.T, router *gin.Engine) (int, models.ErrorResponse) {
		t.Helper()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
		return w.Code, body
	}

	t.Run("error panic carries its message", func(t *testing.T) {
		code, body := do(t, newRouter(errors.New("solver exploded")))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Equal(t, "solver exploded", body.Error.Message)
	})

	t.Run("string panic carries its message", func(t *testing.T) {
		code, body := do(t, newRouter("bad state"))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "bad state", body.Error.Message)
	})

	t.Run("other panic values get the generic message", func(t *testing.T) {
		code, body := do(t, newRouter(42))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "An unexpected error occurred", body.Error.Message)
	})
}

package learning

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRoutesAnswerNotImplemented(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewController().Register(r, func(g *gin.Context) { g.Next() })

	tests := []struct {
		method, path, feature string
	}{
		{http.MethodPost, "/chat/sessions", "chat sessions"},
		{http.MethodGet, "/content", "content listing"},
		{http.MethodPost, "/quiz/generate", "quiz generation"},
	}
	for _, tc := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

		assert.Equal(t, http.StatusNotImplemented, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.feature+" - to be implemented", tc.path)
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-manager-api/internal/application/ports"
)

type FakeTokenVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (ports.Identity, error)
}

func (f *FakeTokenVerifier) Verify(ctx context.Context, token string) (ports.Identity, error) {
	return f.VerifyFunc(ctx, token)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	caller := uuid.New()
	verifier := &FakeTokenVerifier{
		VerifyFunc: func(ctx context.Context, token string) (ports.Identity, error) {
			if token != "good" {
				return ports.Identity{}, errors.New("bad")
			}
			return ports.Identity{UserID: caller, Role: "admin"}, nil
		},
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing Authorization header"},
		{"no bearer prefix", "good", http.StatusUnauthorized, "invalid token format"},
		{"empty bearer", "Bearer   ", http.StatusUnauthorized, "invalid token format"},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, "invalid token"},
		{"ok", "Bearer good", http.StatusOK, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", AuthMiddleware(verifier), func(c *gin.Context) {
				id := c.MustGet(CtxUserID).(uuid.UUID)
				assert.Equal(t, caller, id)
				assert.Equal(t, "admin", c.GetString(CtxUserRole))
				c.Status(http.StatusOK)
			})

			req, err := http.NewRequest(http.MethodGet, "/x", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), `"code":"UNAUTHENTICATED"`)
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

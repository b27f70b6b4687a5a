package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/dto"
)

func newAuthTestRouter(auth *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": currentUserID(c)})
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, authHeader string) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var errResp dto.ErrorResponse
	if rec.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	}
	return rec, errResp
}

func TestAuthMiddlewarePassesUser(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, token string) (*domain.User, error) {
			assert.Equal(t, "good-token", token)
			return &domain.User{ID: "user-1", Email: "a@x.com"}, nil
		},
	}
	router := newAuthTestRouter(auth)

	rec, _ := doRequest(t, router, "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["user_id"])
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{})

	rec, errResp := doRequest(t, router, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", errResp.Message)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{})

	for _, header := range []string{"good-token", "Basic good-token", "Bearer a b"} {
		rec, errResp := doRequest(t, router, header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "invalid authorization header format", errResp.Message, "header %q", header)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	router := newAuthTestRouter(auth)

	rec, errResp := doRequest(t, router, "Bearer stale-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token expired", errResp.Message)
}

func TestAuthMiddlewareDeletedUser(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	router := newAuthTestRouter(auth)

	rec, errResp := doRequest(t, router, "Bearer orphan-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "user not found", errResp.Message)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrInvalidToken
		},
	}
	router := newAuthTestRouter(auth)

	rec, errResp := doRequest(t, router, "Bearer forged-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", errResp.Message)
}

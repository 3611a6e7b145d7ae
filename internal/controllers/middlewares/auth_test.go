package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/services"
	"github.com/tragikomedia/shortener/internal/tokens"
)

var testSecret = []byte("secret")

type mockUserFinder struct {
	mock.Mock
}

func (m *mockUserFinder) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Name)
	})
	return r
}

func signed(t *testing.T, id string, ttl time.Duration) string {
	t.Helper()
	token, err := tokens.GenerateUserJWT(id, "Borewicz", ttl, testSecret)
	require.NoError(t, err)
	return token
}

func TestRequireUser(t *testing.T) {
	borewicz := &models.User{ID: "u1", Name: "Borewicz"}

	tests := []struct {
		name       string
		header     string
		setup      func(m *mockUserFinder)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "valid token",
			header: "Bearer " + signed(t, "u1", time.Hour),
			setup: func(m *mockUserFinder) {
				m.On("GetByID", mock.Anything, "u1").Return(borewicz, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   "Borewicz",
		},
		{name: "no header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signed(t, "u1", -time.Minute), wantStatus: http.StatusUnauthorized},
		{
			name:   "user gone",
			header: "Bearer " + signed(t, "u2", time.Hour),
			setup: func(m *mockUserFinder) {
				m.On("GetByID", mock.Anything, "u2").Return(nil, services.ErrNotFound).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "storage failure",
			header: "Bearer " + signed(t, "u3", time.Hour),
			setup: func(m *mockUserFinder) {
				m.On("GetByID", mock.Anything, "u3").
					Return(nil, fmt.Errorf("%w: connection refused", services.ErrStorage)).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(mockUserFinder)
			if tt.setup != nil {
				tt.setup(finder)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(RequireUser(finder, testSecret)).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			finder.AssertExpectations(t)
		})
	}
}

func TestAttemptUser(t *testing.T) {
	finder := new(mockUserFinder)
	finder.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Name: "Borewicz"}, nil)
	router := newAuthRouter(AttemptUser(finder, testSecret))

	tests := []struct {
		name     string
		header   string
		wantBody string
	}{
		{name: "authenticated", header: "Bearer " + signed(t, "u1", time.Hour), wantBody: "Borewicz"},
		{name: "anonymous", wantBody: "anonymous"},
		{name: "broken token stays anonymous", header: "Bearer broken", wantBody: "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/services"
	"github.com/tragikomedia/shortener/internal/tokens"
)

const (
	// UserKey ключ аутентифицированного пользователя в контексте gin.
	UserKey = "user"

	bearerPrefix       = "Bearer "
	userLookupTimeout  = 3 * time.Second
	unauthorizedReason = "Unauthorized"
)

// UserFinder находит пользователя из токена.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// RequireUser пропускает только запросы с действующим токеном существующего пользователя.
func RequireUser(users UserFinder, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, users, jwtSecret)
		if err != nil {
			_ = c.Error(fmt.Errorf("auth middleware: %w", err))
			if errors.Is(err, services.ErrStorage) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedReason})
			return
		}
		c.Set(UserKey, user)
		c.Next()
	}
}

// AttemptUser определяет пользователя, если токен передан. Анонимные запросы пропускаются.
func AttemptUser(users UserFinder, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, users, jwtSecret)
		switch {
		case err == nil:
			c.Set(UserKey, user)
		case errors.Is(err, errNoToken):
		default:
			_ = c.Error(fmt.Errorf("auth middleware: %w", err))
		}
		c.Next()
	}
}

// CurrentUser возвращает пользователя, установленный RequireUser или AttemptUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

var errNoToken = errors.New("bearer token is missing")

func authenticate(c *gin.Context, users UserFinder, jwtSecret []byte) (*models.User, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, errNoToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		return nil, errNoToken
	}

	claims, err := tokens.ValidateUserJWT(raw, jwtSecret)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), userLookupTimeout)
	defer cancel()
	user, err := users.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", claims.ID, err)
	}
	return user, nil
}

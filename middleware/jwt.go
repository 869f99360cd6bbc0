package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskwell/task-api/internal/apperr"
	"taskwell/task-api/internal/authz"
	"taskwell/task-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type authFailure struct {
	status int
	code   string
}

// NewJWTMiddleware resolves the acting principal from the auth_token
// cookie and aborts unauthenticated requests. The account is re-loaded
// on every request so role, verification and lock changes take effect
// immediately; the snapshot is stashed as "principal" for the handlers.
func NewJWTMiddleware(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fail := resolvePrincipal(c, users); fail != nil {
			c.AbortWithStatusJSON(fail.status, gin.H{
				"error":     fail.code,
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}

// NewOptionalJWTMiddleware attaches a principal when a valid auth_token
// cookie is present but lets anonymous requests through. Locked accounts
// are still refused outright.
func NewOptionalJWTMiddleware(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fail := resolvePrincipal(c, users); fail != nil && fail.code == "account_locked" {
			c.AbortWithStatusJSON(fail.status, gin.H{
				"error":     fail.code,
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}

func resolvePrincipal(c *gin.Context, users store.Users) *authFailure {
	tokenStr, err := c.Cookie("auth_token")
	if err != nil {
		return &authFailure{http.StatusUnauthorized, "no_auth_token"}
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil || !token.Valid {
		return &authFailure{http.StatusUnauthorized, "token_invalid"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return &authFailure{http.StatusUnauthorized, "token_invalid"}
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return &authFailure{http.StatusUnauthorized, "token_invalid"}
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().Unix() >= int64(exp) {
		return &authFailure{http.StatusUnauthorized, "token_expired"}
	}

	user, err := users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return &authFailure{http.StatusUnauthorized, "user_not_found"}
		}

		zap.L().Error("Failed to load principal", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		return &authFailure{http.StatusInternalServerError, "internal_server_error"}
	}

	if user.Locked {
		return &authFailure{http.StatusForbidden, "account_locked"}
	}

	c.Set("userID", user.ID)
	c.Set("principal", &authz.Principal{
		ID:       user.ID,
		Role:     user.Role,
		Verified: user.Verified,
		Locked:   user.Locked,
	})

	return nil
}

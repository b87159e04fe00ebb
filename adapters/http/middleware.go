package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/auth"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

const (
	GinContextKeySession = "session"
)

// AuthMiddleware validates the gateway token and loads the session behind
// it. Loading the session refreshes its idle TTL, so any authenticated
// request keeps the user signed in and five quiet minutes sign them out.
func AuthMiddleware(jwtSvc *auth.JWTService, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}

		c.Set(GinContextKeySession, sess)

		c.Next()
	}
}

func GetSessionFromGinContext(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(GinContextKeySession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	if !ok {
		return nil, false
	}
	return sess, true
}

// ErrorHandler drains errors recorded by handlers and renders the last one.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if status >= http.StatusInternalServerError {
				log.Error("request failed", err, zap.String("path", c.Request.URL.Path))
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("request failed", err, zap.String("path", c.Request.URL.Path))
		c.JSON(status, gin.H{"error": "internal server error"})
	}
}

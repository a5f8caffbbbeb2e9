package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"lexreader/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AuthMiddleware lets only authorized chat users through. Unauthorized
// users are asked for the password; /start always passes.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			if !authService.IsAuthorized(sender.ID) && c.Text() != "/start" {
				logger.Debug("Unauthorized update", zap.Int64("user_id", sender.ID))
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Please log in first"})
				}
				return c.Send("Hi! Send the password to start reading.")
			}

			return next(c)
		}
	}
}

// APIKey requires "Authorization: Bearer <key>" on every request.
// An empty key disables the check.
func APIKey(key string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(key)) != 1 {
			logger.Warn("Rejected request without valid API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}

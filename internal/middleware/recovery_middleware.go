package middleware

import (
	"fmt"
	"net/http"

	"relay-messenger/internal/transport/httpdto"
	"relay-messenger/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic into a 500 with the panic value as the error.
func RecoveryMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			msg := fmt.Sprint(rec)
			if l != nil {
				l.ErrorCtx(c.Request.Context(), "panic recovered",
					zap.String("panic", msg),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewErrorResponse(msg))
		}()
		c.Next()
	}
}

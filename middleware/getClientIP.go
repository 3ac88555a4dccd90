package middleware

import (
	"github.com/gin-gonic/gin"
)

// getClientIP reads X-Forwarded-For and X-Real-IP only when the peer is one of the
// engine's trusted proxies (see Engine.SetTrustedProxies); otherwise it is the peer address.
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return c.Request.RemoteAddr
}

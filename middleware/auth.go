package middleware

import (
	"net/http"
	"strings"

	"homepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthProfessionalMiddleware requires a bearer token whose subject is the
// professional named by the :id route parameter.
func JWTAuthProfessionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		professionalID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || professionalID == "" {
			utils.GetLogger().Debug("Rejected professional token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token"})
			return
		}

		if id := c.Param("id"); id != "" && id != professionalID {
			utils.GetLogger().Warn("Token subject does not own resource",
				zap.String("professionalID", professionalID),
				zap.String("resourceID", id),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Forbidden"})
			return
		}

		c.Set("professionalID", professionalID)
		c.Next()
	}
}

package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextClaims es la clave de gin.Context con los claims de sesión.
const ContextClaims = "sessionClaims"

// Middleware protege rutas del dashboard. Acepta la cookie de sesión o
// un header Authorization: Bearer.
func Middleware(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			header := c.GetHeader("Authorization")
			token = strings.TrimPrefix(header, "Bearer ")
			if token == header { // sin prefijo Bearer
				token = ""
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesión inválida o expirada"})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

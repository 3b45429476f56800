package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peopleflow/peopleflow/internal/auth"
	"github.com/peopleflow/peopleflow/internal/schema"
)

// SignIn valida credenciales y deja la sesión en una cookie HTTP-only.
// Cualquier fallo responde 401 con el mismo mensaje.
func (h *Handler) SignIn(c *gin.Context) {
	var creds schema.SignIn
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrCredenciales.Error()})
		return
	}

	token, user, err := h.auth.SignIn(c.Request.Context(), creds)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie(auth.SessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"name": user.Name, "email": user.Email},
	})
}

// SignOut invalida la cookie de sesión.
func (h *Handler) SignOut(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peopleflow/peopleflow/internal/spaces"
)

// UploadCV recibe el CV como multipart "file". Toda respuesta es JSON,
// incluidos los fallos de parseo: el cliente descarta cualquier cuerpo
// que no sea JSON como error de comunicación.
func (h *Handler) UploadCV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.log.WithError(err).Warn("Carga de CV sin archivo")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No se recibió ningún archivo"})
		return
	}

	if file.Size > spaces.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "El archivo excede el tamaño máximo permitido de 10MB"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if !spaces.MimeAllowed(mimeType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Tipo de archivo no permitido: " + mimeType + ". Tipos permitidos: PDF, Word (.doc, .docx)",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.log.WithError(err).Error("Error abriendo archivo recibido")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al subir el CV"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, spaces.MaxFileSize+1))
	if err != nil {
		h.log.WithError(err).Error("Error leyendo archivo recibido")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al subir el CV"})
		return
	}
	if int64(len(data)) > spaces.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "El archivo excede el tamaño máximo permitido de 10MB"})
		return
	}

	record, err := h.files.Upload(c.Request.Context(), file.Filename, mimeType, data, c.ClientIP())
	if err != nil {
		h.log.WithError(err).Error("Error subiendo CV")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al subir el CV"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "file": record})
}

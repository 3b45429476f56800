package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peopleflow/peopleflow/internal/candidate"
	"github.com/peopleflow/peopleflow/internal/export"
	"github.com/peopleflow/peopleflow/internal/models"
	"github.com/peopleflow/peopleflow/internal/schema"
	"github.com/peopleflow/peopleflow/internal/table"
)

type submitRequest struct {
	schema.Form
	FileID string `json:"fileId"`
}

// SubmitCandidate valida y persiste el formulario completo. Un fallo
// atribuible incluye el campo culpable para que el cliente regrese al
// paso correspondiente.
func (h *Handler) SubmitCandidate(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Formato de datos inválido"})
		return
	}

	id, field, err := h.submitter.Submit(c.Request.Context(), req.Form, req.FileID)
	if err != nil {
		status := http.StatusBadRequest
		if field == "" && err.Error() != candidate.MsgSinCV {
			status = http.StatusInternalServerError
		}
		resp := gin.H{"success": false, "error": err.Error()}
		if field != "" {
			resp["field"] = field
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func candidateColumns() []table.Column[models.Candidate] {
	return []table.Column[models.Candidate]{
		{Key: "nombre", Header: "Nombre", Value: func(m models.Candidate) string { return m.Nombre }},
		{Key: "correo", Header: "Correo", Value: func(m models.Candidate) string { return m.Correo }},
		{Key: "telefono", Header: "Teléfono", Value: func(m models.Candidate) string { return m.Telefono }},
		{Key: "ciudad", Header: "Ciudad", Value: func(m models.Candidate) string { return m.Ciudad }},
		{Key: "ultimoSector", Header: "Último Sector", Value: func(m models.Candidate) string { return m.UltimoSector }},
		{Key: "puestoInteres", Header: "Puesto de Interés", Value: func(m models.Candidate) string { return m.PuestoInteres }},
		{Key: "salarioDeseado", Header: "Salario Deseado", Value: func(m models.Candidate) string {
			return strconv.FormatInt(m.SalarioDeseado, 10)
		}},
		{Key: "ingles", Header: "Inglés", Value: func(m models.Candidate) string { return m.Ingles }},
		{Key: "createdAt", Header: "Fecha de Registro", Value: func(m models.Candidate) string {
			return m.CreatedAt.Format("2006-01-02 15:04")
		}},
	}
}

// candidateTable arma la tabla del dashboard a partir de los query
// params search/sortBy/sortDir.
func (h *Handler) candidateTable(c *gin.Context) (*table.Table[models.Candidate], error) {
	rows, err := h.candidates.FindCandidates(c.Request.Context())
	if err != nil {
		return nil, err
	}

	tb := table.New(candidateColumns(), rows, table.DefaultConfig("nombre"))
	tb.SetSearch(c.Query("search"))
	if sortBy := c.Query("sortBy"); sortBy != "" {
		tb.ToggleSort(sortBy)
		if c.Query("sortDir") == "desc" {
			tb.ToggleSort(sortBy)
		}
	}
	return tb, nil
}

// ListCandidates devuelve la página solicitada del conjunto filtrado.
func (h *Handler) ListCandidates(c *gin.Context) {
	tb, err := h.candidateTable(c)
	if err != nil {
		h.log.WithError(err).Error("Error listando candidatos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar candidatos"})
		return
	}

	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		tb.SetPageSize(size)
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		tb.SetPage(page)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      tb.Page(),
		"total":     len(tb.Filtered()),
		"page":      tb.CurrentPage(),
		"pageCount": tb.PageCount(),
	})
}

// ExportCandidates descarga el conjunto filtrado (no la página) como
// hoja de cálculo.
func (h *Handler) ExportCandidates(c *gin.Context) {
	tb, err := h.candidateTable(c)
	if err != nil {
		h.log.WithError(err).Error("Error exportando candidatos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al exportar candidatos"})
		return
	}

	headers, rows := tb.ExportData()
	buf := &bytes.Buffer{}
	if err := export.WriteXLSX(buf, headers, rows); err != nil {
		h.log.WithError(err).Error("Error generando archivo de exportación")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el archivo"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.DefaultFileName()+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Package handlers expone la superficie HTTP: intake público de
// candidatos y rutas protegidas del dashboard.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/peopleflow/peopleflow/internal/auth"
	"github.com/peopleflow/peopleflow/internal/models"
	"github.com/peopleflow/peopleflow/internal/schema"
)

// Sectores es el catálogo fijo de sectores de experiencia que ofrece
// el select del formulario.
var Sectores = []string{
	"Tecnología",
	"Finanzas",
	"Salud",
	"Educación",
	"Manufactura",
	"Retail",
	"Consultoría",
	"Marketing",
	"Recursos Humanos",
	"Operaciones",
	"Otro",
}

// FileService sube CVs y registra su referencia.
type FileService interface {
	Upload(ctx context.Context, fileName, mimeType string, data []byte, uploadedBy string) (*models.FileAttachment, error)
}

// SubmitService persiste un formulario validado.
type SubmitService interface {
	Submit(ctx context.Context, f schema.Form, fileID string) (id, field string, err error)
}

// AuthService valida credenciales y emite sesiones.
type AuthService interface {
	SignIn(ctx context.Context, creds schema.SignIn) (string, *models.User, error)
}

// CandidateLister lee los candidatos registrados para el dashboard.
type CandidateLister interface {
	FindCandidates(ctx context.Context) ([]models.Candidate, error)
}

type Handler struct {
	files      FileService
	submitter  SubmitService
	auth       AuthService
	candidates CandidateLister
	log        *logrus.Logger
}

func New(files FileService, submitter SubmitService, authSvc AuthService, candidates CandidateLister, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{files: files, submitter: submitter, auth: authSvc, candidates: candidates, log: log}
}

// SetupRoutes registra todas las rutas. Las de lectura del dashboard
// exigen sesión; el intake es público.
func SetupRoutes(r *gin.Engine, h *Handler, sessions *auth.Sessions) {
	r.GET("/health", HealthCheck)
	r.GET("/api/meta", h.Meta)
	r.POST("/api/upload-cv", h.UploadCV)
	r.POST("/api/candidates", h.SubmitCandidate)
	r.POST("/api/auth/sign-in", h.SignIn)
	r.POST("/api/auth/sign-out", h.SignOut)

	protected := r.Group("/api", auth.Middleware(sessions))
	protected.GET("/candidates", h.ListCandidates)
	protected.GET("/candidates/export", h.ExportCandidates)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Meta entrega el catálogo de sectores y los límites de salario para
// que el cliente arme el formulario.
func (h *Handler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sectores":   Sectores,
		"salarioMin": schema.SalarioMin,
		"salarioMax": schema.SalarioMax,
	})
}

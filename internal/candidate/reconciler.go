// Package candidate persiste formularios validados y traduce los
// fallos de la capa de persistencia a errores atribuibles por campo.
package candidate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peopleflow/peopleflow/internal/models"
	"github.com/peopleflow/peopleflow/internal/schema"
	"github.com/peopleflow/peopleflow/internal/storage"
)

// Mensajes de cara al usuario. El detalle real queda en el log.
const (
	MsgCorreoDuplicado = "El correo electrónico ya está registrado"
	MsgErrorGenerico   = "Ocurrió un error al enviar el formulario. Por favor intenta de nuevo."
	MsgSinCV           = "Por favor carga tu CV antes de enviar el formulario."
)

// CandidateStore es la operación de persistencia que necesita el
// reconciliador.
type CandidateStore interface {
	CreateCandidate(ctx context.Context, c *models.Candidate) error
}

// Reconciler valida del lado del servidor (la validación del cliente
// no es confiable), normaliza y persiste. Nunca deja escapar un pánico
// ni un error crudo de infraestructura.
type Reconciler struct {
	store CandidateStore
	log   *logrus.Logger
}

func NewReconciler(store CandidateStore, log *logrus.Logger) *Reconciler {
	if log == nil {
		log = logrus.New()
	}
	return &Reconciler{store: store, log: log}
}

// Submit persiste el payload. Devuelve el id del registro creado, o el
// campo culpable y un error legible cuando el fallo es atribuible.
func (r *Reconciler) Submit(ctx context.Context, f schema.Form, fileID string) (string, string, error) {
	fileRef, err := uuid.Parse(fileID)
	if err != nil || fileRef == uuid.Nil {
		return "", "", errors.New(MsgSinCV)
	}

	normalized, errs := schema.ValidateComplete(f)
	if !errs.Valid() {
		field, msg := errs.First()
		return "", field, errors.New(msg)
	}

	c := &models.Candidate{
		Nombre:            normalized.Nombre,
		MunicipioAlcaldia: normalized.MunicipioAlcaldia,
		Ciudad:            normalized.Ciudad,
		Telefono:          normalized.Telefono,
		Correo:            normalized.Correo,
		UltimoSector:      normalized.UltimoSector,
		UltimoPuesto:      normalized.UltimoPuesto,
		PuestoInteres:     normalized.PuestoInteres,
		SalarioDeseado:    normalized.SalarioDeseado,
		Titulado:          schema.TituladoBool(normalized.Titulado),
		Ingles:            normalized.Ingles,
		FileID:            fileRef,
	}

	if err := r.store.CreateCandidate(ctx, c); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return "", "correo", errors.New(MsgCorreoDuplicado)
		}
		r.log.WithError(err).Error("Error al persistir candidato")
		return "", "", errors.New(MsgErrorGenerico)
	}

	return c.ID.String(), "", nil
}

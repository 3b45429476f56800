package form

import (
	"context"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peopleflow/peopleflow/internal/schema"
	"github.com/peopleflow/peopleflow/internal/upload"
)

// Submitter persiste el formulario agregado. err == nil indica éxito;
// field nombra el campo culpable cuando el error es atribuible a uno
// (p.ej. correo duplicado).
type Submitter interface {
	Submit(ctx context.Context, f schema.Form, fileID string) (id string, field string, err error)
}

// Result es el desenlace de un intento de envío.
type Result struct {
	Success  bool
	ID       string
	Messages []string
}

// Controller mantiene el estado del formulario multi-paso y coordina
// el tracker de subida con el envío final.
type Controller struct {
	mu        sync.Mutex
	state     State
	tracker   *upload.Tracker
	submitter Submitter
	log       *logrus.Logger
}

func NewController(tracker *upload.Tracker, submitter Submitter, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.New()
	}
	return &Controller{
		state:     NewState(),
		tracker:   tracker,
		submitter: submitter,
		log:       log,
	}
}

// State devuelve una instantánea del estado del formulario.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// UploadState expone el estado del tracker de subida.
func (c *Controller) UploadState() upload.State {
	return c.tracker.Snapshot()
}

// SetField actualiza un campo de texto, validándolo de forma
// incremental: el error del campo se recalcula con cada tecla.
func (c *Controller) SetField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case "nombre":
		c.state.Values.Nombre = value
	case "municipioAlcaldia":
		c.state.Values.MunicipioAlcaldia = value
	case "ciudad":
		c.state.Values.Ciudad = value
	case "telefono":
		c.state.Values.Telefono = value
	case "correo":
		c.state.Values.Correo = value
	case "ultimoSector":
		c.state.Values.UltimoSector = value
	case "ultimoPuesto":
		c.state.Values.UltimoPuesto = value
	case "puestoInteres":
		c.state.Values.PuestoInteres = value
	case "salarioDeseado":
		salario, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			c.state.Values.SalarioDeseado = salario
		}
	case "titulado":
		c.state.Values.Titulado = value
	case "ingles":
		c.state.Values.Ingles = value
	default:
		return
	}

	if msg := schema.ValidateField(field, value); msg != "" {
		c.state.FieldErrors[field] = msg
	} else {
		delete(c.state.FieldErrors, field)
	}
}

// SetTerms registra la aceptación de términos y condiciones.
func (c *Controller) SetTerms(accepted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.TermsAccepted = accepted
}

// FilesChanged delega el cambio de selección al tracker de subida.
func (c *Controller) FilesChanged(files []upload.File) {
	c.tracker.OnFilesChanged(files)
}

// Continue intenta avanzar al siguiente paso. Devuelve los mensajes de
// bloqueo; vacío significa que el paso avanzó.
func (c *Controller) Continue() []string {
	up := c.tracker.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	next, msgs := Advance(c.state, up)
	c.state = next
	if len(msgs) == 0 && next.FirstInvalid != "" {
		// Parte 1 inválida: el paso no cambió y hay errores por campo.
		return []string{"Por favor corrige los errores en el formulario antes de continuar."}
	}
	return msgs
}

// Back retrocede un paso.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Back(c.state)
}

// Submit valida el payload completo y lo delega al Submitter. En éxito
// resetea formulario, tracker y términos; en fallo conserva todos los
// datos capturados.
func (c *Controller) Submit(ctx context.Context) Result {
	up := c.tracker.Snapshot()

	c.mu.Lock()
	if c.state.Submitting {
		c.mu.Unlock()
		return Result{Messages: []string{"El formulario ya se está enviando."}}
	}

	if msgs := gateUploadCV(c.state, up); len(msgs) > 0 {
		c.state.Step = StepUploadCV
		c.mu.Unlock()
		return Result{Messages: msgs}
	}

	normalized, errs := schema.ValidateComplete(c.state.Values)
	if !errs.Valid() {
		c.state.FieldErrors = mergeErrors(c.state.FieldErrors, errs)
		first, msg := errs.First()
		c.state.FirstInvalid = first
		c.state.Step = RouteToError(first)
		c.mu.Unlock()
		return Result{Messages: []string{msg}}
	}

	c.state.Submitting = true
	c.mu.Unlock()

	id, field, err := c.submitter.Submit(ctx, normalized, up.FileID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Submitting = false

	if err != nil {
		if field != "" {
			c.state.FieldErrors[field] = err.Error()
			c.state.FirstInvalid = field
			c.state.Step = RouteToError(field)
		}
		return Result{Messages: []string{err.Error()}}
	}

	c.state = NewState()
	c.tracker.Reset()
	return Result{Success: true, ID: id, Messages: []string{"Formulario enviado correctamente"}}
}

func (c *Controller) snapshotLocked() State {
	st := c.state
	st.FieldErrors = mergeErrors(schema.Errors{}, c.state.FieldErrors)
	return st
}

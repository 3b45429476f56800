// Package form orquesta los tres pasos del formulario de candidatos.
// Las transiciones son funciones puras (estado, evento) -> estado para
// que los estados ilegales sean irrepresentables y verificables sin
// simular interfaz.
package form

import (
	"github.com/peopleflow/peopleflow/internal/schema"
	"github.com/peopleflow/peopleflow/internal/upload"
)

// Step identifica el paso visible del formulario.
type Step int

const (
	StepUploadCV Step = iota
	StepPersonalInfo
	StepProfessionalInfo
)

// Mensajes de bloqueo del paso 0, uno por condición faltante.
const (
	MsgSinArchivo       = "Sube tu CV antes de continuar."
	MsgSubiendo         = "Espera a que termine la subida de tu CV."
	MsgSubidaIncompleta = "Tu CV aún no se ha subido correctamente. Intenta nuevamente."
	MsgSinTerminos      = "Debes aceptar los términos y condiciones para continuar."
)

// State es el estado agregado del formulario. Se crea vacío al montar
// y se descarta (reset) sólo tras una persistencia exitosa.
type State struct {
	Step          Step
	TermsAccepted bool
	Values        schema.Form
	FieldErrors   schema.Errors
	FirstInvalid  string // campo a enfocar tras un intento bloqueado
	Submitting    bool
}

// NewState devuelve el estado inicial del formulario.
func NewState() State {
	return State{Step: StepUploadCV, FieldErrors: schema.Errors{}}
}

// Advance intenta avanzar un paso. Devuelve el nuevo estado y los
// mensajes de bloqueo si la puerta del paso no se supera; con mensajes
// presentes el paso no cambia.
func Advance(st State, up upload.State) (State, []string) {
	switch st.Step {
	case StepUploadCV:
		msgs := gateUploadCV(st, up)
		if len(msgs) > 0 {
			return st, msgs
		}
		st.Step = StepPersonalInfo
		return st, nil

	case StepPersonalInfo:
		errs := schema.ValidatePart1(st.Values.Part1)
		if !errs.Valid() {
			st.FieldErrors = mergeErrors(st.FieldErrors, errs)
			st.FirstInvalid, _ = errs.First()
			return st, nil
		}
		st.Step = StepProfessionalInfo
		st.FirstInvalid = ""
		return st, nil
	}
	return st, nil
}

// Back retrocede un paso; desde el paso 0 no hace nada.
func Back(st State) State {
	switch st.Step {
	case StepProfessionalInfo:
		st.Step = StepPersonalInfo
	case StepPersonalInfo:
		st.Step = StepUploadCV
	}
	return st
}

// gateUploadCV evalúa la puerta del paso 0: CV subido y términos
// aceptados.
func gateUploadCV(st State, up upload.State) []string {
	var msgs []string
	switch {
	case len(up.Files) == 0:
		msgs = append(msgs, MsgSinArchivo)
	case up.Status == upload.StatusUploading:
		msgs = append(msgs, MsgSubiendo)
	case up.Status != upload.StatusUploaded || up.FileID == "":
		msgs = append(msgs, MsgSubidaIncompleta)
	}
	if !st.TermsAccepted {
		msgs = append(msgs, MsgSinTerminos)
	}
	return msgs
}

// RouteToError devuelve el paso que contiene el primer campo inválido.
func RouteToError(field string) Step {
	if schema.Part2Fields[field] {
		return StepProfessionalInfo
	}
	return StepPersonalInfo
}

func mergeErrors(dst, src schema.Errors) schema.Errors {
	merged := schema.Errors{}
	for f, m := range dst {
		merged[f] = m
	}
	for f, m := range src {
		merged[f] = m
	}
	return merged
}

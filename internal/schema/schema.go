// Package schema declara las reglas de validación del formulario de
// candidatos y del inicio de sesión. Todas las funciones son puras:
// nunca entran en pánico y devuelven errores por campo.
package schema

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// SalarioMax acota el salario deseado mensual en MXN.
	SalarioMax = 10_000_000
	SalarioMin = 0
)

var (
	nombreRegexp   = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s'-]+$`)
	telefonoRegexp = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	correoRegexp   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NivelesIngles son los únicos valores aceptados para el campo ingles.
var NivelesIngles = []string{"Avanzado", "Intermedio", "No"}

// OpcionesTitulado son los únicos valores aceptados para el campo titulado.
var OpcionesTitulado = []string{"Sí", "No"}

// Part1 agrupa los datos personales (paso 1 del formulario).
type Part1 struct {
	Nombre            string `json:"nombre"`
	MunicipioAlcaldia string `json:"municipioAlcaldia"`
	Ciudad            string `json:"ciudad"`
	Telefono          string `json:"telefono"`
	Correo            string `json:"correo"`
	UltimoSector      string `json:"ultimoSector"`
}

// Part2 agrupa los datos profesionales (paso 2 del formulario).
type Part2 struct {
	UltimoPuesto   string `json:"ultimoPuesto"`
	PuestoInteres  string `json:"puestoInteres"`
	SalarioDeseado int64  `json:"salarioDeseado"`
	Titulado       string `json:"titulado"`
	Ingles         string `json:"ingles"`
}

// Form es el payload completo que se valida antes de persistir.
type Form struct {
	Part1
	Part2
}

// Errors mapea nombre de campo a mensaje de rechazo.
type Errors map[string]string

// FieldOrder fija el orden de los campos tal como aparecen en el
// formulario, para poder localizar el primer campo inválido.
var FieldOrder = []string{
	"nombre",
	"municipioAlcaldia",
	"ciudad",
	"telefono",
	"correo",
	"ultimoSector",
	"ultimoPuesto",
	"puestoInteres",
	"salarioDeseado",
	"titulado",
	"ingles",
}

// Part2Fields son los campos que viven en el paso 2.
var Part2Fields = map[string]bool{
	"ultimoPuesto":   true,
	"puestoInteres":  true,
	"salarioDeseado": true,
	"titulado":       true,
	"ingles":         true,
}

// Valid informa si no hay errores.
func (e Errors) Valid() bool { return len(e) == 0 }

// First devuelve el primer campo inválido según FieldOrder y su mensaje.
func (e Errors) First() (field, message string) {
	for _, f := range FieldOrder {
		if msg, ok := e[f]; ok {
			return f, msg
		}
	}
	return "", ""
}

// ValidatePart1 valida los datos personales.
func ValidatePart1(p Part1) Errors {
	errs := Errors{}

	if msg := validarNombre(p.Nombre); msg != "" {
		errs["nombre"] = msg
	}
	if msg := validarTexto(p.MunicipioAlcaldia, "El municipio o alcaldía", 2, 100, false); msg != "" {
		errs["municipioAlcaldia"] = msg
	}
	if msg := validarTexto(p.Ciudad, "La ciudad", 2, 100, true); msg != "" {
		errs["ciudad"] = msg
	}
	if msg := validarTelefono(p.Telefono); msg != "" {
		errs["telefono"] = msg
	}
	if msg := validarCorreo(p.Correo); msg != "" {
		errs["correo"] = msg
	}
	if strings.TrimSpace(p.UltimoSector) == "" {
		errs["ultimoSector"] = "El sector de experiencia es requerido"
	}
	return errs
}

// ValidatePart2 valida los datos profesionales.
func ValidatePart2(p Part2) Errors {
	errs := Errors{}

	if msg := validarTexto(p.UltimoPuesto, "El último puesto", 2, 200, false); msg != "" {
		errs["ultimoPuesto"] = msg
	}
	if msg := validarTexto(p.PuestoInteres, "El puesto de interés", 2, 200, false); msg != "" {
		errs["puestoInteres"] = msg
	}
	if p.SalarioDeseado < SalarioMin {
		errs["salarioDeseado"] = "El salario deseado no puede ser negativo"
	} else if p.SalarioDeseado > SalarioMax {
		errs["salarioDeseado"] = "El salario deseado no puede exceder 10,000,000"
	}
	if !contains(OpcionesTitulado, p.Titulado) {
		errs["titulado"] = "Debes indicar si estás titulado"
	}
	if !contains(NivelesIngles, p.Ingles) {
		errs["ingles"] = "Debes seleccionar tu nivel de inglés"
	}
	return errs
}

// ValidateComplete valida el payload completo y, si es válido, devuelve
// la versión normalizada (espacios recortados, correo en minúsculas).
func ValidateComplete(f Form) (Form, Errors) {
	errs := ValidatePart1(f.Part1)
	for field, msg := range ValidatePart2(f.Part2) {
		errs[field] = msg
	}
	if !errs.Valid() {
		return Form{}, errs
	}
	return Normalize(f), errs
}

// Normalize recorta espacios en todos los campos de texto y pasa el
// correo a minúsculas. No valida.
func Normalize(f Form) Form {
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.MunicipioAlcaldia = strings.TrimSpace(f.MunicipioAlcaldia)
	f.Ciudad = strings.TrimSpace(f.Ciudad)
	f.Telefono = strings.TrimSpace(f.Telefono)
	f.Correo = strings.ToLower(strings.TrimSpace(f.Correo))
	f.UltimoSector = strings.TrimSpace(f.UltimoSector)
	f.UltimoPuesto = strings.TrimSpace(f.UltimoPuesto)
	f.PuestoInteres = strings.TrimSpace(f.PuestoInteres)
	f.Titulado = strings.TrimSpace(f.Titulado)
	f.Ingles = strings.TrimSpace(f.Ingles)
	return f
}

// TituladoBool mapea la etiqueta Sí/No a booleano para persistencia.
func TituladoBool(titulado string) bool { return titulado == "Sí" }

func validarNombre(nombre string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(nombre))
	switch {
	case n == 0:
		return "El nombre es requerido"
	case n < 2:
		return "El nombre debe tener al menos 2 caracteres"
	case n > 100:
		return "El nombre no puede exceder 100 caracteres"
	}
	if !nombreRegexp.MatchString(strings.TrimSpace(nombre)) {
		return "El nombre solo puede contener letras, espacios y caracteres especiales válidos"
	}
	return ""
}

func validarTexto(valor, etiqueta string, min, max int, femenino bool) string {
	sufijo := "requerido"
	if femenino {
		sufijo = "requerida"
	}
	n := utf8.RuneCountInString(strings.TrimSpace(valor))
	switch {
	case n == 0:
		return etiqueta + " es " + sufijo
	case n < min:
		return etiqueta + " debe tener al menos 2 caracteres"
	case n > max:
		return etiqueta + " no puede exceder " + strconv.Itoa(max) + " caracteres"
	}
	return ""
}

func validarTelefono(telefono string) string {
	t := strings.TrimSpace(telefono)
	n := utf8.RuneCountInString(t)
	switch {
	case n == 0:
		return "El teléfono es requerido"
	case n < 10:
		return "El teléfono debe tener al menos 10 dígitos"
	case n > 20:
		return "El teléfono no puede exceder 20 caracteres"
	}
	if !telefonoRegexp.MatchString(t) {
		return "El teléfono solo puede contener números y los caracteres: +, -, espacios y paréntesis"
	}
	return ""
}

func validarCorreo(correo string) string {
	c := strings.TrimSpace(correo)
	n := utf8.RuneCountInString(c)
	switch {
	case n == 0:
		return "El correo electrónico es requerido"
	case n > 255:
		return "El correo electrónico no puede exceder 255 caracteres"
	}
	if !correoRegexp.MatchString(c) {
		return "Por favor ingresa un correo electrónico válido (ejemplo: nombre@dominio.com)"
	}
	return ""
}

func contains(opciones []string, valor string) bool {
	for _, o := range opciones {
		if o == valor {
			return true
		}
	}
	return false
}

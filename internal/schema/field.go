package schema

import "strconv"

// ValidateField valida un único campo a partir de su valor textual.
// Devuelve el mensaje de rechazo, o cadena vacía si el valor es válido.
// Se usa para validación incremental mientras el usuario escribe.
func ValidateField(field, value string) string {
	switch field {
	case "nombre":
		return validarNombre(value)
	case "municipioAlcaldia":
		return validarTexto(value, "El municipio o alcaldía", 2, 100, false)
	case "ciudad":
		return validarTexto(value, "La ciudad", 2, 100, true)
	case "telefono":
		return validarTelefono(value)
	case "correo":
		return validarCorreo(value)
	case "ultimoSector":
		if value == "" {
			return "El sector de experiencia es requerido"
		}
	case "ultimoPuesto":
		return validarTexto(value, "El último puesto", 2, 200, false)
	case "puestoInteres":
		return validarTexto(value, "El puesto de interés", 2, 200, false)
	case "salarioDeseado":
		salario, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "El salario deseado debe ser un número"
		}
		if salario < SalarioMin {
			return "El salario deseado no puede ser negativo"
		}
		if salario > SalarioMax {
			return "El salario deseado no puede exceder 10,000,000"
		}
	case "titulado":
		if !contains(OpcionesTitulado, value) {
			return "Debes indicar si estás titulado"
		}
	case "ingles":
		if !contains(NivelesIngles, value) {
			return "Debes seleccionar tu nivel de inglés"
		}
	}
	return ""
}

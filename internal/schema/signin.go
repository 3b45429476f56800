package schema

// SignIn es el payload de inicio de sesión del dashboard.
type SignIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ValidateSignIn valida las credenciales antes de consultarlas.
func ValidateSignIn(s SignIn) Errors {
	errs := Errors{}
	if !correoRegexp.MatchString(s.Email) {
		errs["email"] = "El correo electrónico no es válido."
	}
	if len(s.Password) < 5 {
		errs["password"] = "La contraseña debe tener al menos 5 caracteres."
	} else if len(s.Password) > 16 {
		errs["password"] = "La contraseña debe tener como máximo 16 caracteres."
	}
	return errs
}

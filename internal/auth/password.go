package auth

import "golang.org/x/crypto/bcrypt"

const saltRounds = 10

// HashPassword genera el hash bcrypt de una contraseña en texto plano.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), saltRounds)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword comprueba una contraseña contra su hash almacenado.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

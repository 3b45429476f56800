package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peopleflow/peopleflow/internal/models"
)

// SessionCookie es el nombre de la cookie de sesión del dashboard.
const SessionCookie = "peopleflow_session"

// SessionTTL es la vigencia de una sesión.
const SessionTTL = 24 * time.Hour

var ErrInvalidSession = errors.New("sesión inválida o expirada")

// Claims son los datos de sesión embebidos en el JWT.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Sessions emite y verifica tokens de sesión firmados con HS256.
type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// Issue firma un token de sesión para el usuario.
func (s *Sessions) Issue(u *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID.String(),
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifica la firma y vigencia del token y devuelve sus claims.
func (s *Sessions) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Package auth implementa el inicio de sesión por credenciales y las
// sesiones JWT del dashboard.
package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/peopleflow/peopleflow/internal/models"
	"github.com/peopleflow/peopleflow/internal/schema"
	"github.com/peopleflow/peopleflow/internal/storage"
)

// ErrCredenciales se devuelve para cualquier fallo de autenticación.
// Nunca se distingue entre "usuario no existe" y "contraseña errónea".
var ErrCredenciales = errors.New("Credenciales inválidas.")

// UserStore busca cuentas del dashboard.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Service struct {
	store    UserStore
	sessions *Sessions
	log      *logrus.Logger
}

func NewService(store UserStore, sessions *Sessions, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{store: store, sessions: sessions, log: log}
}

// SignIn valida credenciales y emite un token de sesión.
func (s *Service) SignIn(ctx context.Context, creds schema.SignIn) (string, *models.User, error) {
	if errs := schema.ValidateSignIn(creds); !errs.Valid() {
		return "", nil, ErrCredenciales
	}

	user, err := s.store.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Error("Error consultando usuario")
		}
		return "", nil, ErrCredenciales
	}

	if user.Password == "" || !VerifyPassword(creds.Password, user.Password) {
		return "", nil, ErrCredenciales
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		s.log.WithError(err).Error("Error emitiendo sesión")
		return "", nil, ErrCredenciales
	}
	return token, user, nil
}

// Package storage encapsula el acceso a la base de datos para
// candidatos, archivos y usuarios del dashboard.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peopleflow/peopleflow/internal/models"
)

// ErrDuplicateEmail señala una violación de unicidad sobre el correo
// del candidato. Es un error recuperable, no fatal.
var ErrDuplicateEmail = errors.New("correo duplicado")

// ErrNotFound señala un registro inexistente.
var ErrNotFound = errors.New("registro no encontrado")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateCandidate inserta un candidato. Un conflicto de unicidad en el
// correo se traduce a ErrDuplicateEmail.
func (s *Store) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

// FindCandidates devuelve todos los candidatos, más recientes primero.
func (s *Store) FindCandidates(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	return candidates, nil
}

// GetCandidateByEmail busca un candidato por correo normalizado.
func (s *Store) GetCandidateByEmail(ctx context.Context, correo string) (*models.Candidate, error) {
	var c models.Candidate
	if err := s.db.WithContext(ctx).First(&c, "correo = ?", correo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get candidate by email: %w", err)
	}
	return &c, nil
}

// CountCandidates devuelve el total de candidatos registrados.
func (s *Store) CountCandidates(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Candidate{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return total, nil
}

// CreateFileRecord registra la referencia de un archivo subido.
func (s *Store) CreateFileRecord(ctx context.Context, f *models.FileAttachment) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create file record: %w", err)
	}
	return nil
}

// GetFileRecord busca la referencia de un archivo por id.
func (s *Store) GetFileRecord(ctx context.Context, id uuid.UUID) (*models.FileAttachment, error) {
	var f models.FileAttachment
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get file record: %w", err)
	}
	return &f, nil
}

// DeleteFileRecord elimina la referencia de un archivo.
func (s *Store) DeleteFileRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.FileAttachment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}

// GetUserByEmail busca una cuenta del dashboard.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// UpsertUser crea la cuenta o actualiza nombre y contraseña si el
// correo ya existe. Lo usa el seed de migraciones.
func (s *Store) UpsertUser(ctx context.Context, u *models.User) error {
	existing, err := s.GetUserByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		existing.Name = u.Name
		existing.Password = u.Password
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		*u = *existing
		return nil
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

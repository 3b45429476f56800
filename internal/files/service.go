// Package files compone el almacenamiento de objetos con el registro
// de archivos en base de datos.
package files

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peopleflow/peopleflow/internal/models"
)

// ObjectStorage abstrae Digital Ocean Spaces.
type ObjectStorage interface {
	Upload(ctx context.Context, fileName, mimeType string, data []byte, folder string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// FileStore abstrae el registro de archivos en base de datos.
type FileStore interface {
	CreateFileRecord(ctx context.Context, f *models.FileAttachment) error
	GetFileRecord(ctx context.Context, id uuid.UUID) (*models.FileAttachment, error)
	DeleteFileRecord(ctx context.Context, id uuid.UUID) error
}

// Folder es la carpeta de Spaces donde viven los CVs.
const Folder = "cvs"

type Service struct {
	storage ObjectStorage
	store   FileStore
	log     *logrus.Logger
}

func NewService(storage ObjectStorage, store FileStore, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{storage: storage, store: store, log: log}
}

// Upload sube el archivo a Spaces y registra la referencia. Si el
// registro en base de datos falla, el objeto recién subido se elimina
// para no dejar huérfanos.
func (s *Service) Upload(ctx context.Context, fileName, mimeType string, data []byte, uploadedBy string) (*models.FileAttachment, error) {
	fileURL, err := s.storage.Upload(ctx, fileName, mimeType, data, Folder)
	if err != nil {
		return nil, err
	}

	f := &models.FileAttachment{
		FileName:   fileName,
		FileURL:    fileURL,
		FileSize:   int64(len(data)),
		MimeType:   mimeType,
		UploadedBy: uploadedBy,
	}
	if err := s.store.CreateFileRecord(ctx, f); err != nil {
		if delErr := s.storage.Delete(ctx, fileURL); delErr != nil {
			s.log.WithError(delErr).Warn("No se pudo limpiar el objeto tras fallo de registro")
		}
		return nil, fmt.Errorf("register file: %w", err)
	}

	return f, nil
}

// Delete elimina el objeto de Spaces y después su registro.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.store.GetFileRecord(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, f.FileURL); err != nil {
		return err
	}
	return s.store.DeleteFileRecord(ctx, id)
}

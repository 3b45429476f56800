package files

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/peopleflow/peopleflow/internal/db"
	"github.com/peopleflow/peopleflow/internal/storage"
)

type fakeStorage struct {
	uploads int
	deletes []string
	failPut bool
}

func (f *fakeStorage) Upload(_ context.Context, fileName, _ string, _ []byte, folder string) (string, error) {
	if f.failPut {
		return "", errors.New("Acceso denegado al subir el archivo")
	}
	f.uploads++
	return "https://sfo3.digitaloceanspaces.com/peopleflowcandidates/" + folder + "/" + fileName, nil
}

func (f *fakeStorage) Delete(_ context.Context, fileURL string) error {
	f.deletes = append(f.deletes, fileURL)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "files.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return storage.NewStore(conn)
}

func TestUploadRegistersFile(t *testing.T) {
	t.Parallel()

	fs := &fakeStorage{}
	st := newTestStore(t)
	svc := NewService(fs, st, quietLogger())
	ctx := context.Background()

	f, err := svc.Upload(ctx, "cv.pdf", "application/pdf", []byte("%PDF-1.4"), "")
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if f.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if f.FileSize != 8 {
		t.Fatalf("expected size 8, got %d", f.FileSize)
	}

	got, err := st.GetFileRecord(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetFileRecord error: %v", err)
	}
	if got.FileURL != f.FileURL {
		t.Fatalf("expected url %q, got %q", f.FileURL, got.FileURL)
	}
}

func TestUploadStorageFailure(t *testing.T) {
	t.Parallel()

	fs := &fakeStorage{failPut: true}
	svc := NewService(fs, newTestStore(t), quietLogger())

	_, err := svc.Upload(context.Background(), "cv.pdf", "application/pdf", nil, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if fs.uploads != 0 {
		t.Fatalf("expected no successful upload, got %d", fs.uploads)
	}
}

func TestDeleteRemovesObjectAndRecord(t *testing.T) {
	t.Parallel()

	fs := &fakeStorage{}
	st := newTestStore(t)
	svc := NewService(fs, st, quietLogger())
	ctx := context.Background()

	f, err := svc.Upload(ctx, "cv.pdf", "application/pdf", []byte("data"), "")
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if err := svc.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(fs.deletes) != 1 || fs.deletes[0] != f.FileURL {
		t.Fatalf("expected object delete for %q, got %v", f.FileURL, fs.deletes)
	}
	if _, err := st.GetFileRecord(ctx, f.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}

func TestDeleteUnknownFile(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeStorage{}, newTestStore(t), quietLogger())

	err := svc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/peopleflow/peopleflow/internal/db"
	"github.com/peopleflow/peopleflow/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "peopleflow.db")
	conn, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(conn)
}

func sampleCandidate(correo string) *models.Candidate {
	return &models.Candidate{
		Nombre:            "María López",
		MunicipioAlcaldia: "Benito Juárez",
		Ciudad:            "Ciudad de México",
		Telefono:          "5512345678",
		Correo:            correo,
		UltimoSector:      "Tecnología",
		UltimoPuesto:      "Gerente",
		PuestoInteres:     "Directora",
		SalarioDeseado:    45000,
		Titulado:          true,
		Ingles:            "Intermedio",
		FileID:            uuid.New(),
	}
}

func TestCreateAndFindCandidates(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	if err := st.CreateCandidate(ctx, sampleCandidate("a@example.com")); err != nil {
		t.Fatalf("CreateCandidate error: %v", err)
	}
	if err := st.CreateCandidate(ctx, sampleCandidate("b@example.com")); err != nil {
		t.Fatalf("CreateCandidate error: %v", err)
	}

	got, err := st.FindCandidates(ctx)
	if err != nil {
		t.Fatalf("FindCandidates error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}

	total, err := st.CountCandidates(ctx)
	if err != nil {
		t.Fatalf("CountCandidates error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected count 2, got %d", total)
	}
}

func TestDuplicateEmailRejectedOnce(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	if err := st.CreateCandidate(ctx, sampleCandidate("dup@example.com")); err != nil {
		t.Fatalf("first create error: %v", err)
	}

	err := st.CreateCandidate(ctx, sampleCandidate("dup@example.com"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Rechazo idempotente: no debe existir un segundo registro.
	total, err := st.CountCandidates(ctx)
	if err != nil {
		t.Fatalf("CountCandidates error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected exactly 1 record, got %d", total)
	}
}

func TestGetCandidateByEmail(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	c := sampleCandidate("maria@example.com")
	if err := st.CreateCandidate(ctx, c); err != nil {
		t.Fatalf("CreateCandidate error: %v", err)
	}

	got, err := st.GetCandidateByEmail(ctx, "maria@example.com")
	if err != nil {
		t.Fatalf("GetCandidateByEmail error: %v", err)
	}
	if got.ID != c.ID {
		t.Fatalf("expected id %s, got %s", c.ID, got.ID)
	}

	if _, err := st.GetCandidateByEmail(ctx, "nadie@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileRecordLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	f := &models.FileAttachment{
		FileName: "cv.pdf",
		FileURL:  "https://sfo3.digitaloceanspaces.com/peopleflowcandidates/cvs/x.pdf",
		FileSize: 2048,
		MimeType: "application/pdf",
	}
	if err := st.CreateFileRecord(ctx, f); err != nil {
		t.Fatalf("CreateFileRecord error: %v", err)
	}
	if f.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}

	got, err := st.GetFileRecord(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetFileRecord error: %v", err)
	}
	if got.FileURL != f.FileURL {
		t.Fatalf("expected url %q, got %q", f.FileURL, got.FileURL)
	}

	if err := st.DeleteFileRecord(ctx, f.ID); err != nil {
		t.Fatalf("DeleteFileRecord error: %v", err)
	}
	if _, err := st.GetFileRecord(ctx, f.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpsertUser(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	u := &models.User{Name: "Usuario Administrador", Email: "admin@test.com", Password: "hash-1"}
	if err := st.UpsertUser(ctx, u); err != nil {
		t.Fatalf("UpsertUser error: %v", err)
	}

	// Segundo upsert con el mismo correo actualiza la contraseña.
	again := &models.User{Name: "Usuario Administrador", Email: "admin@test.com", Password: "hash-2"}
	if err := st.UpsertUser(ctx, again); err != nil {
		t.Fatalf("UpsertUser second error: %v", err)
	}

	got, err := st.GetUserByEmail(ctx, "admin@test.com")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if got.Password != "hash-2" {
		t.Fatalf("expected updated password hash, got %q", got.Password)
	}
	if got.ID != u.ID {
		t.Fatalf("expected stable id %s, got %s", u.ID, got.ID)
	}
}

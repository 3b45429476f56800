package upload

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// stubUploader bloquea cada subida hasta que el test la libere.
type stubUploader struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	fileID  string
	err     error
}

func newStubUploader(fileID string) *stubUploader {
	return &stubUploader{release: make(chan struct{}), fileID: fileID}
}

func (s *stubUploader) Upload(_ context.Context, _ File) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	<-s.release
	return s.fileID, s.err
}

func (s *stubUploader) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func waitSettled(t *testing.T, tr *Tracker) {
	t.Helper()
	select {
	case <-tr.Settled():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for upload to settle")
	}
}

func cvFile(name string) File {
	return File{Name: name, Size: 1024, LastModified: 1700000000, MimeType: "application/pdf"}
}

func TestUploadSuccess(t *testing.T) {
	t.Parallel()

	up := newStubUploader("file-123")
	tr := NewTracker(up, quietLogger())

	tr.OnFilesChanged([]File{cvFile("cv.pdf")})
	if st := tr.Snapshot(); st.Status != StatusUploading {
		t.Fatalf("expected uploading, got %s", st.Status)
	}

	close(up.release)
	waitSettled(t, tr)

	st := tr.Snapshot()
	if st.Status != StatusUploaded {
		t.Fatalf("expected uploaded, got %s", st.Status)
	}
	if st.FileID != "file-123" {
		t.Fatalf("expected file-123, got %q", st.FileID)
	}
	if st.Err != "" {
		t.Fatalf("expected no error, got %q", st.Err)
	}
}

func TestUploadFailureClearsReference(t *testing.T) {
	t.Parallel()

	up := newStubUploader("")
	up.err = errors.New("Tipo de archivo no permitido")
	tr := NewTracker(up, quietLogger())

	tr.OnFilesChanged([]File{cvFile("cv.exe")})
	close(up.release)
	waitSettled(t, tr)

	st := tr.Snapshot()
	if st.Status != StatusError {
		t.Fatalf("expected error status, got %s", st.Status)
	}
	if st.FileID != "" {
		t.Fatalf("expected empty reference, got %q", st.FileID)
	}
	if st.Err != "Tipo de archivo no permitido" {
		t.Fatalf("unexpected error message: %q", st.Err)
	}
}

func TestSingleFlightIgnoresOverlappingSelection(t *testing.T) {
	t.Parallel()

	up := newStubUploader("file-1")
	tr := NewTracker(up, quietLogger())

	first := cvFile("primero.pdf")
	second := cvFile("segundo.pdf")

	tr.OnFilesChanged([]File{first})
	// Reemplazo antes de que resuelva la primera subida: debe ignorarse.
	tr.OnFilesChanged([]File{second})

	if got := up.callCount(); got != 1 {
		t.Fatalf("expected exactly 1 upload call, got %d", got)
	}

	close(up.release)
	waitSettled(t, tr)

	st := tr.Snapshot()
	if st.Status != StatusUploaded {
		t.Fatalf("expected uploaded, got %s", st.Status)
	}
	if st.FileID != "file-1" {
		t.Fatalf("expected reference from the single resolved upload, got %q", st.FileID)
	}
	if got := up.callCount(); got != 1 {
		t.Fatalf("expected still 1 upload call, got %d", got)
	}
}

func TestClearSelectionResetsAfterUpload(t *testing.T) {
	t.Parallel()

	up := newStubUploader("file-9")
	tr := NewTracker(up, quietLogger())

	tr.OnFilesChanged([]File{cvFile("cv.pdf")})
	close(up.release)
	waitSettled(t, tr)

	if st := tr.Snapshot(); st.Status != StatusUploaded {
		t.Fatalf("expected uploaded, got %s", st.Status)
	}

	tr.OnFilesChanged(nil)

	st := tr.Snapshot()
	if st.Status != StatusIdle {
		t.Fatalf("expected idle after clearing selection, got %s", st.Status)
	}
	if st.FileID != "" {
		t.Fatalf("expected cleared reference, got %q", st.FileID)
	}
	if len(st.Files) != 0 {
		t.Fatalf("expected no tracked files, got %d", len(st.Files))
	}
}

func TestInFlightResponseDiscardedAfterRemoval(t *testing.T) {
	t.Parallel()

	up := newStubUploader("file-tarde")
	tr := NewTracker(up, quietLogger())

	tr.OnFilesChanged([]File{cvFile("cv.pdf")})
	// El usuario elimina el archivo con la subida aún en vuelo.
	tr.OnFilesChanged(nil)

	close(up.release)
	waitSettled(t, tr)

	st := tr.Snapshot()
	if st.Status != StatusIdle {
		t.Fatalf("expected idle, got %s", st.Status)
	}
	if st.FileID != "" {
		t.Fatalf("expected stale response to be discarded, got %q", st.FileID)
	}
}

func TestResetDiscardsInFlightUpload(t *testing.T) {
	t.Parallel()

	up := newStubUploader("file-x")
	tr := NewTracker(up, quietLogger())

	tr.OnFilesChanged([]File{cvFile("cv.pdf")})
	tr.Reset()

	close(up.release)
	waitSettled(t, tr)

	st := tr.Snapshot()
	if st.Status != StatusIdle || st.FileID != "" || st.Err != "" {
		t.Fatalf("expected pristine state after reset, got %+v", st)
	}
}

func TestSameFileSelectionDoesNotReupload(t *testing.T) {
	t.Parallel()

	up := newStubUploader("file-1")
	tr := NewTracker(up, quietLogger())

	f := cvFile("cv.pdf")
	tr.OnFilesChanged([]File{f})
	close(up.release)
	waitSettled(t, tr)

	// Misma identidad (nombre, tamaño, fecha): no hay archivo nuevo.
	tr.OnFilesChanged([]File{f})

	if got := up.callCount(); got != 1 {
		t.Fatalf("expected no re-upload for identical file, got %d calls", got)
	}
	if st := tr.Snapshot(); st.Status != StatusUploaded {
		t.Fatalf("expected uploaded to remain, got %s", st.Status)
	}
}

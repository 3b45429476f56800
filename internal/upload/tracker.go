// Package upload separa "archivo elegido" de "archivo almacenado".
// El Tracker es una máquina de estados con garantía single-flight:
// nunca hay más de una subida en curso y los resultados de subidas
// canceladas por un reset se descartan.
package upload

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Status es el estado observable de la subida.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusUploaded  Status = "uploaded"
	StatusError     Status = "error"
)

// File identifica un archivo seleccionado por el usuario. La identidad
// se compara por (Name, Size, LastModified), no por contenido.
type File struct {
	Name         string
	Size         int64
	LastModified int64
	MimeType     string
	Data         []byte
}

// Uploader envía el archivo al endpoint remoto y devuelve el id del
// registro creado.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// State es una instantánea del Tracker.
type State struct {
	Status Status
	FileID string
	Err    string
	Files  []File
}

// Tracker observa cambios de selección de archivos y sube como máximo
// un archivo a la vez.
type Tracker struct {
	mu       sync.Mutex
	uploader Uploader
	log      *logrus.Logger

	status  Status
	fileID  string
	errMsg  string
	files   []File
	prev    []File
	gen     uint64 // invalida respuestas de subidas ya descartadas
	settled chan struct{}
}

func NewTracker(uploader Uploader, log *logrus.Logger) *Tracker {
	if log == nil {
		log = logrus.New()
	}
	return &Tracker{
		uploader: uploader,
		log:      log,
		status:   StatusIdle,
		settled:  make(chan struct{}, 16),
	}
}

// Snapshot devuelve el estado actual.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	files := make([]File, len(t.files))
	copy(files, t.files)
	return State{Status: t.status, FileID: t.fileID, Err: t.errMsg, Files: files}
}

// Settled notifica cada vez que una subida termina (aplicada o
// descartada). Existe para poder sincronizar en pruebas.
func (t *Tracker) Settled() <-chan struct{} {
	return t.settled
}

// OnFilesChanged procesa un cambio en la selección de archivos.
//
// Selección vacía: se limpia todo el estado, incluso con una subida en
// curso; su respuesta eventual será descartada. Archivo nuevo (según
// identidad nombre/tamaño/fecha): inicia la subida salvo que ya haya
// una en curso, en cuyo caso se ignora con una advertencia, sin cola.
func (t *Tracker) OnFilesChanged(files []File) {
	t.mu.Lock()

	t.files = append([]File(nil), files...)

	if len(files) == 0 {
		t.gen++
		t.status = StatusIdle
		t.fileID = ""
		t.errMsg = ""
		t.prev = nil
		t.mu.Unlock()
		return
	}

	newFile, ok := findNewFile(t.prev, files)
	t.prev = append([]File(nil), files...)

	if !ok {
		t.mu.Unlock()
		return
	}

	if t.status == StatusUploading {
		t.log.Warn("Ya hay una subida en curso, ignorando nueva solicitud")
		t.mu.Unlock()
		return
	}

	t.status = StatusUploading
	t.errMsg = ""
	gen := t.gen
	t.mu.Unlock()

	go t.upload(gen, newFile)
}

// Reset fuerza el estado inicial sin condiciones. Se usa tras un envío
// exitoso del formulario completo.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.status = StatusIdle
	t.fileID = ""
	t.errMsg = ""
	t.files = nil
	t.prev = nil
}

func (t *Tracker) upload(gen uint64, f File) {
	fileID, err := t.uploader.Upload(context.Background(), f)

	t.mu.Lock()
	defer t.mu.Unlock()

	// El archivo fue eliminado o el tracker fue reseteado durante la
	// subida: descartar la respuesta.
	if gen != t.gen || t.status != StatusUploading {
		t.notifySettled()
		return
	}

	if err != nil {
		t.log.WithError(err).Error("Error al subir CV")
		t.status = StatusError
		t.errMsg = err.Error()
		t.fileID = ""
		t.notifySettled()
		return
	}

	t.status = StatusUploaded
	t.fileID = fileID
	t.errMsg = ""
	t.notifySettled()
}

func (t *Tracker) notifySettled() {
	select {
	case t.settled <- struct{}{}:
	default:
	}
}

func sameFile(a, b File) bool {
	return a.Name == b.Name && a.Size == b.Size && a.LastModified == b.LastModified
}

// findNewFile busca un archivo de la nueva selección que no estuviera
// en la anterior.
func findNewFile(oldFiles, newFiles []File) (File, bool) {
	if len(newFiles) == 0 {
		return File{}, false
	}
	if len(oldFiles) == 0 {
		return newFiles[0], true
	}
	for _, nf := range newFiles {
		exists := false
		for _, of := range oldFiles {
			if sameFile(of, nf) {
				exists = true
				break
			}
		}
		if !exists {
			return nf, true
		}
	}
	return File{}, false
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate es el registro durable creado a partir de un formulario validado.
// No existe flujo de edición: una vez creado, el registro es inmutable.
type Candidate struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre            string    `gorm:"type:varchar(100)" json:"nombre"`
	MunicipioAlcaldia string    `gorm:"type:varchar(100)" json:"municipioAlcaldia"`
	Ciudad            string    `gorm:"type:varchar(100)" json:"ciudad"`
	Telefono          string    `gorm:"type:varchar(20)" json:"telefono"`
	Correo            string    `gorm:"type:varchar(255);uniqueIndex" json:"correo"`
	UltimoSector      string    `gorm:"type:varchar(100)" json:"ultimoSector"`
	UltimoPuesto      string    `gorm:"type:varchar(200)" json:"ultimoPuesto"`
	PuestoInteres     string    `gorm:"type:varchar(200)" json:"puestoInteres"`
	SalarioDeseado    int64     `json:"salarioDeseado"`
	Titulado          bool      `json:"titulado"`
	Ingles            string    `gorm:"type:varchar(20)" json:"ingles"`
	FileID            uuid.UUID `gorm:"type:uuid" json:"fileId"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FileAttachment referencia un CV almacenado en Digital Ocean Spaces.
type FileAttachment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileName   string    `gorm:"type:varchar(255)" json:"fileName"`
	FileURL    string    `gorm:"type:varchar(512)" json:"fileUrl"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `gorm:"type:varchar(128)" json:"mimeType"`
	UploadedBy string    `gorm:"type:varchar(255)" json:"uploadedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// User es una cuenta interna con acceso al dashboard.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(100)" json:"-"` // hash bcrypt
	CreatedAt time.Time `json:"createdAt"`
}

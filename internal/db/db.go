package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/peopleflow/peopleflow/internal/models"
)

func Connect(dbURL string) (*gorm.DB, error) {
	// TranslateError permite detectar violaciones de unicidad con
	// gorm.ErrDuplicatedKey sin depender del driver.
	conn, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return conn, nil
}

// Migrate ejecuta la automigración de todos los modelos.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.Candidate{},
		&models.FileAttachment{},
		&models.User{},
	); err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}
	return nil
}

// Comando de migración y seed del usuario administrador.
package main

import (
	"context"
	"log"
	"os"

	"github.com/peopleflow/peopleflow/internal/auth"
	"github.com/peopleflow/peopleflow/internal/config"
	"github.com/peopleflow/peopleflow/internal/db"
	"github.com/peopleflow/peopleflow/internal/models"
	"github.com/peopleflow/peopleflow/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatal(err)
	}

	// Cuenta del dashboard. La contraseña puede sobreescribirse por
	// entorno para no dejar la de desarrollo en producción.
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal(err)
	}

	store := storage.NewStore(conn)
	admin := &models.User{
		Name:     "Usuario Administrador",
		Email:    "admin@test.com",
		Password: hash,
	}
	if err := store.UpsertUser(context.Background(), admin); err != nil {
		log.Fatal(err)
	}

	log.Println("Migraciones completadas y usuario administrador listo")
}

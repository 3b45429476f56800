package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/peopleflow/peopleflow/internal/auth"
	"github.com/peopleflow/peopleflow/internal/candidate"
	"github.com/peopleflow/peopleflow/internal/config"
	"github.com/peopleflow/peopleflow/internal/db"
	"github.com/peopleflow/peopleflow/internal/files"
	"github.com/peopleflow/peopleflow/internal/handlers"
	"github.com/peopleflow/peopleflow/internal/spaces"
	"github.com/peopleflow/peopleflow/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.WithError(err).Fatal("Error conectando a la base de datos")
	}
	if err := db.Migrate(conn); err != nil {
		log.WithError(err).Fatal("Error ejecutando migraciones")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spacesClient, err := spaces.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Error configurando Spaces")
	}

	store := storage.NewStore(conn)
	sessions := auth.NewSessions(cfg.AuthSecret)

	handler := handlers.New(
		files.NewService(spacesClient, store, log),
		candidate.NewReconciler(store, log),
		auth.NewService(store, sessions, log),
		store,
		log,
	)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	handlers.SetupRoutes(r, handler, sessions)

	srv := &http.Server{Addr: cfg.HTTPPort, Handler: r}
	go func() {
		log.Infof("peopleflow escuchando en %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Error del servidor HTTP")
		}
	}()

	<-ctx.Done()
	log.Info("Apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Apagado forzado")
	}
}

package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"answerhub/internal/app"
	"answerhub/internal/config"
	"answerhub/internal/database"
	"answerhub/internal/database/migration"
	"answerhub/internal/otel"
	"answerhub/internal/repository/dynamo"
	"answerhub/internal/service"
	"answerhub/internal/storage"
)

func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Upload directory is ephemeral local disk, created if absent.
	files, err := storage.NewLocal(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	// The store handle itself is established lazily on first request; the
	// table bootstrap runs once at startup and is best effort.
	mgr := database.NewManager(cfg.Store)
	if cfg.Store.Table != "" {
		if api, err := database.Dial(ctx, cfg.Store); err != nil {
			log.Printf("table bootstrap skipped, store not reachable: %v", err)
		} else if err := migration.EnsureTable(ctx, api, cfg.Store.Table); err != nil {
			log.Printf("table bootstrap failed: %v", err)
		}
	}

	repo := dynamo.NewAnswerDynamo(mgr, cfg.Store.Table)
	svc := service.NewAnswerService(files, repo)

	srv, err := app.New(mgr, svc, files)
	if err != nil {
		log.Fatalf("failed to assemble application: %v", err)
	}

	addr := ":" + cfg.Port
	if err := srv.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

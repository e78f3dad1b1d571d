package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hire-portal/internal/audit"
	"hire-portal/internal/config"
	"hire-portal/internal/database/migration"
	dbpostgres "hire-portal/internal/database/postgres"
	"hire-portal/internal/infrastructure/events"
)

const queueGroup = "auditor"

func main() {
	cfg, err := config.LoadAuditor()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	name := strings.TrimSpace(cfg.App.AppName)
	if name == "" {
		name = "hire-portal-auditor"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connCtx, connCancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := dbpostgres.Connect(connCtx, cfg.Database, name)
	connCancel()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
	r := migration.Runner{FS: audit.Migrations, Dir: audit.MigrationsDir}
	err = r.Run(migCtx, db)
	migCancel()
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	nc, err := events.Connect(cfg.NATS.URL, name, logger)
	if err != nil {
		log.Fatalf("failed to connect nats: %v", err)
	}
	consumer := events.NewConsumer(nc, logger)
	defer consumer.Close()

	recorder := audit.NewRecorder(audit.NewStore(db), logger)
	if _, err := consumer.Subscribe(ctx, audit.SubjectAll, queueGroup, recorder.Handle); err != nil {
		log.Fatalf("subscribe %s failed: %v", audit.SubjectAll, err)
	}
	logger.Printf("[Audit] Listening subject=%s queue=%s", audit.SubjectAll, queueGroup)

	<-ctx.Done()
	logger.Printf("[Audit] Shutting down")
}

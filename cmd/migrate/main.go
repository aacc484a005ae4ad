package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"writeoff-service/internal/config"
	"writeoff-service/internal/infrastructure/db"
	"writeoff-service/internal/migration"
	"writeoff-service/internal/migration/steps"
)

func main() {
	down := flag.Bool("down", false, "revert the most recently applied step")
	status := flag.Bool("status", false, "print applied and pending steps")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	runner := migration.NewRunner(gdb, steps.All()...)
	ctx := context.Background()

	switch {
	case *status:
		applied, err := runner.Applied(ctx)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		pending, err := runner.Pending(ctx)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		for _, rec := range applied {
			log.Printf("applied: %s at %s", rec.Name, rec.AppliedAt.UTC().Format("2006-01-02 15:04:05"))
		}
		for _, s := range pending {
			log.Printf("pending: %s", s.Name())
		}
	case *down:
		if err := runner.Down(ctx); err != nil {
			log.Fatalf("down: %v", err)
		}
	default:
		n, err := runner.Up(ctx)
		if err != nil {
			log.Fatalf("up: %v", err)
		}
		log.Printf("applied %d step(s)", n)
	}
}

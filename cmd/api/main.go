package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "writeoff-service/internal/adapter/http"
	"writeoff-service/internal/adapter/middleware"
	"writeoff-service/internal/adapter/repository/mysql"
	"writeoff-service/internal/config"
	"writeoff-service/internal/infrastructure/cache"
	"writeoff-service/internal/infrastructure/db"
	"writeoff-service/internal/infrastructure/pdf"
	"writeoff-service/internal/infrastructure/storage"
	"writeoff-service/internal/usecase/writeoffpdf"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	store, err := storage.NewDisk(cfg.PdfDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	writeOffs := mysql.NewWriteOffRepository(gdb)
	pdfs := mysql.NewWriteOffPdfRepository(gdb)
	unit := mysql.NewGormUoW(gdb)
	uc := writeoffpdf.NewUsecase(unit, writeOffs, pdfs, pdf.NewReceiptRenderer(), store)

	h := httpadp.NewHandler()
	pdfHandler := httpadp.NewWriteOffPdfHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/write-offs/:id/pdf", pdfHandler.Generate, idemp)
	e.GET("/write-offs/:id/pdf", pdfHandler.Get)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akvideo/technikliste-backend/internal/db"
	"github.com/akvideo/technikliste-backend/internal/handlers"
	"github.com/akvideo/technikliste-backend/internal/latex"
	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/reportid"
	"github.com/akvideo/technikliste-backend/internal/repos"
	"github.com/akvideo/technikliste-backend/internal/reports"
	"github.com/akvideo/technikliste-backend/internal/server"
	"github.com/akvideo/technikliste-backend/internal/services"
	"github.com/akvideo/technikliste-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env, read once here and handed down as explicit config
	dbConfig := db.Config{
		URL:        utils.GetEnv("DATABASE_URL", "postgres://postgres@localhost:5432/technikliste", log),
		RequireSSL: utils.GetEnvAsBool("REQUIRE_SSL", false, log),
	}
	port := utils.GetEnvAsInt("PORT", 8080, log)
	assetsDir := utils.GetEnv("PDF_ASSETS_DIR", "pdf_assets", log)
	setupScript := utils.GetEnv("LATEX_SETUP_SCRIPT", "latex_setup.sh", log)
	extraOrigins := utils.GetEnv("CORS_EXTRA_ORIGINS", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(dbConfig, log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	verificationRepo := repos.NewVerificationRepo(thePG, log)
	deviceRepo := repos.NewDeviceRepo(thePG, log)

	// Services
	compiler := latex.NewPDFLatex(setupScript, log)
	if err := compiler.AssertReady(context.Background()); err != nil {
		log.Warn("LaTeX toolchain not ready, report builds will fail until fixed", "error", err)
	}
	generator := reportid.NewGenerator(verificationRepo, log)
	filler := reports.NewFiller(assetsDir, generator, log)
	deviceService := services.NewDeviceService(deviceRepo, log)
	reportService := services.NewReportService(deviceRepo, verificationRepo, filler, compiler, log)

	// Handlers
	healthHandler := handlers.NewHealthHandler(compiler)
	deviceHandler := handlers.NewDeviceHandler(deviceService)
	reportHandler := handlers.NewReportHandler(reportService)

	srv := server.NewServer(server.RouterConfig{
		Log:           log,
		ExtraOrigins:  splitOrigins(extraOrigins),
		HealthHandler: healthHandler,
		DeviceHandler: deviceHandler,
		ReportHandler: reportHandler,
	})

	address := fmt.Sprintf(":%d", port)
	log.Info("Starting server", "address", address)
	if err := srv.Run(address); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

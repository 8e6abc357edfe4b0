package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "creditdesk-backend/internal/api/http"
	"creditdesk-backend/internal/config"
	"creditdesk-backend/internal/logger"
	"creditdesk-backend/internal/repository/postgres"
	"creditdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Credit Desk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	auditSvc := service.NewAuditService(store.AuditRepository)
	clientSvc := service.NewClientService(store.ClientRepository, auditSvc)
	creditSvc := service.NewCreditService(
		store.CreditRepository,
		store.ClientRepository,
		store.SettlementRepository,
		store.ChequeRepository,
		store.InstallmentRepository,
		auditSvc,
	)
	settlementSvc := service.NewSettlementService(store.SettlementRepository, store.CreditRepository, auditSvc)
	chequeSvc := service.NewChequeService(
		store.ChequeRepository,
		store.CreditRepository,
		store.InstallmentRepository,
		store.AlertRepository,
		auditSvc,
	)
	reminderSvc := service.NewReminderService(
		store.ChequeRepository,
		store.InstallmentRepository,
		store.CreditRepository,
		store.ClientRepository,
		store.AgentRepository,
	)
	alertSvc := service.NewAlertService(store.AlertRepository, store.InstallmentRepository, auditSvc)
	dashboardSvc := service.NewDashboardService(store.DashboardRepository)

	// Set up routes
	router := httpapi.NewRouter(httpapi.Services{
		Clients:     clientSvc,
		Credits:     creditSvc,
		Settlements: settlementSvc,
		Cheques:     chequeSvc,
		Reminders:   reminderSvc,
		Alerts:      alertSvc,
		Audit:       auditSvc,
		Dashboard:   dashboardSvc,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

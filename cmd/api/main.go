package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/hi4requency/fynstra/internal/config"
	"github.com/hi4requency/fynstra/internal/goals"
	"github.com/hi4requency/fynstra/internal/handler"
	"github.com/hi4requency/fynstra/internal/integrations/peerstats"
	"github.com/hi4requency/fynstra/internal/integrations/sheets"
	"github.com/hi4requency/fynstra/internal/middleware"
	"github.com/hi4requency/fynstra/internal/repository"
	"github.com/hi4requency/fynstra/internal/service"
	"github.com/hi4requency/fynstra/internal/utils/email"
)

func main() {
	// Local .env is optional
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	goalStore := goals.NewStore(logger)
	peers := peerstats.NewClient(cfg, logger)
	sheetSync := sheets.NewClient(cfg, logger)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, goalStore, peers, sheetSync, logger, cfg)
	h := handler.NewHandler(svc, sender)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/health", h.Health).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/fhi", h.CheckFinancialHealth).Methods("POST")
	authRouter.HandleFunc("/snapshot", h.GetSnapshot).Methods("GET")
	authRouter.HandleFunc("/snapshot", h.PutSnapshot).Methods("PUT")
	authRouter.HandleFunc("/scenario", h.RunScenario).Methods("POST")
	authRouter.HandleFunc("/scenario/presets", h.ListScenarioPresets).Methods("GET")
	authRouter.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	authRouter.HandleFunc("/goals", h.ListGoals).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.GetGoal).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.UpdateGoal).Methods("PUT")
	authRouter.HandleFunc("/goals/{id}", h.DeleteGoal).Methods("DELETE")
	authRouter.HandleFunc("/goals/{id}/months/{month}", h.ToggleGoalMonth).Methods("PUT")
	authRouter.HandleFunc("/goals/{id}/roadmap", h.GoalRoadmap).Methods("GET")
	authRouter.HandleFunc("/report", h.DownloadReport).Methods("GET")
	authRouter.HandleFunc("/report/email", h.EmailReport).Methods("POST")

	// Monthly savings-roadmap reminders
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReminderCron, func() {
		svc.SendMonthlyReminders(sender)
	}); err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

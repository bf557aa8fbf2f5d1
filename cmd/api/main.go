package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/hjhuang/identity-service/internal/config"
	"github.com/hjhuang/identity-service/internal/handler"
	"github.com/hjhuang/identity-service/internal/middleware"
	"github.com/hjhuang/identity-service/internal/notify"
	"github.com/hjhuang/identity-service/internal/password"
	"github.com/hjhuang/identity-service/internal/repository"
	"github.com/hjhuang/identity-service/internal/service"
	"github.com/hjhuang/identity-service/internal/token"
)

func main() {
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
	hasher := password.NewHasher(cfg.BcryptCost)
	codec := token.NewCodec([]byte(cfg.JWTSecret))

	var notifier service.Notifier
	sender := notify.NewSender(cfg, logger)
	if sender.Enabled() {
		notifier = sender
	} else {
		logger.Info("SMTP not configured, registration notices disabled")
	}

	authSvc := service.NewAuthService(repo, hasher, codec, notifier, cfg.TokenTTL, logger)
	adminSvc := service.NewAdminService(repo, hasher, logger)
	h := handler.NewHandler(authSvc, adminSvc, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	// Public routes
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	// Protected routes
	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.Authenticate(codec, logger))
	adminRouter.HandleFunc("/users", h.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/users", h.CreateUser).Methods("POST")
	adminRouter.HandleFunc("/users/{id:[0-9]+}", h.UpdateUser).Methods("PUT")
	adminRouter.HandleFunc("/users/{id:[0-9]+}", h.DeleteUser).Methods("DELETE")
	adminRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"moodlog/internal/db"
	"moodlog/internal/handlers"
	mw "moodlog/internal/middleware"
	"moodlog/internal/services"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	blindIndexKey := os.Getenv("BLIND_INDEX_KEY")
	encSvc, err := services.NewEncryptionService([]byte(encryptionKey), []byte(blindIndexKey))
	if err != nil {
		logger.Fatal("invalid encryption keys", zap.Error(err))
	}

	port := mustGetenv("PORT", "8080")

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.Error(err))
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		logger.Fatal("failed to ping db", zap.Error(err))
	}
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(dbConn, encSvc, []byte(jwtSecret))
	userHandler := handlers.NewUserHandler(dbConn, encSvc)
	entriesHandler := handlers.NewEntriesHandler(dbConn, encSvc)
	journalsHandler := handlers.NewJournalsHandler(dbConn, encSvc)
	chatHandler := handlers.NewChatHandler(dbConn)
	statsHandler := handlers.NewStatsHandler(dbConn)
	adminHandler := handlers.NewAdminHandler(dbConn)
	importHandler := handlers.NewImportHandler(dbConn, encSvc)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))
	chatLimiter := mw.NewChatRateLimiter()

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)

			pr.Get("/me", userHandler.GetMe)
			pr.Put("/me", userHandler.UpdateMe)

			pr.Put("/entries", entriesHandler.UpsertEntry)
			pr.Get("/entries", entriesHandler.List)
			pr.Get("/entries/{date}", entriesHandler.GetByDate)
			pr.Delete("/entries/{date}", entriesHandler.Delete)

			pr.Post("/journals", journalsHandler.CreateJournal)
			pr.Get("/journals", journalsHandler.ListJournals)
			pr.Delete("/journals/{journalID}", journalsHandler.DeleteJournal)
			pr.Post("/journals/{journalID}/entries", journalsHandler.CreateEntry)
			pr.Get("/journals/{journalID}/entries", journalsHandler.ListEntries)
			pr.Get("/journals/{journalID}/entries/{entryID}", journalsHandler.GetEntry)

			pr.With(chatLimiter.Limit).Post("/chat/messages", chatHandler.SendMessage)
			pr.Get("/chat/messages", chatHandler.History)

			pr.Get("/stats", statsHandler.Get)

			pr.Post("/import", importHandler.ImportData)

			pr.Get("/admin/overview", adminHandler.Overview)
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}

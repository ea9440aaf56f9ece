package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/auth"
	"github.com/junaidrashid-git/bookmarket-api/config"
	orderControllers "github.com/junaidrashid-git/bookmarket-api/controllers/order"
	"github.com/junaidrashid-git/bookmarket-api/database"
	"github.com/junaidrashid-git/bookmarket-api/notify"
	"github.com/junaidrashid-git/bookmarket-api/routes"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	tokens, err := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to set up tokens: %w", err)
	}

	// Notification sinks: log lines always, the admin websocket feed, Kafka when configured.
	hub := notify.NewHub()
	sinks := []notify.Sink{notify.LogSink{Latency: cfg.Notify.EmailDelay}, hub}
	if len(cfg.Notify.KafkaBrokers) > 0 {
		log.Printf("📡 Publishing notifications to Kafka topic %s", cfg.Notify.KafkaTopic)
		sinks = append(sinks, notify.NewKafkaSink(cfg.Notify.KafkaBrokers, cfg.Notify.KafkaTopic))
	}
	dispatcher := notify.NewDispatcher(cfg.Notify.QueueSize, sinks...)
	defer dispatcher.Close()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSAllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		DB:                   db,
		Tokens:               tokens,
		Notifier:             dispatcher,
		Orders:               orderControllers.NewService(db, dispatcher),
		Hub:                  hub,
		APIPrefix:            cfg.APIPrefix,
		FrontendDir:          cfg.FrontendDir,
		AllowSuperuserSignup: cfg.Auth.AllowSuperuserSignup,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 %s running on port %s...", cfg.ProjectName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	// Websocket connections are hijacked and not closed by Shutdown.
	_ = hub.Close()
	log.Println("👋 Server stopped")
	return nil
}

// gin-contrib/cors refuses a wildcard origin combined with credentials.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

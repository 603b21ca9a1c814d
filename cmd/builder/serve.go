package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
	"github.com/hairizuan-noorazman/scenario-builder/cmd/builder/handlers"
	"github.com/hairizuan-noorazman/scenario-builder/database"
	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/hairizuan-noorazman/scenario-builder/session"
	"github.com/hairizuan-noorazman/scenario-builder/storage"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	autoMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log := logger.NewLogrusLogger(cfg.Log.Level, logger.WithFormat(cfg.Log.Format))
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	// Blob storage backs blob drafts and, without a certs dir, the certificates
	blobs, err := storage.NewBlobStorage(ctx, cfg.Storage.blobs())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	drafts, closeDrafts, err := openDraftStore(ctx, cfg, blobs, log)
	if err != nil {
		return err
	}
	defer closeDrafts()

	// Certificates
	certBlobs := blobs
	if cfg.Certs.Dir != "" {
		certBlobs, err = storage.NewLocalStorage(cfg.Certs.Dir)
		if err != nil {
			return fmt.Errorf("failed to open certificate directory: %w", err)
		}
	}
	monitor := certs.NewMonitor()
	loader := certs.NewLoader(certBlobs, monitor, log)
	unsubscribe := monitor.Subscribe(func(status certs.Status) {
		log.Info(context.Background(), "certificate status changed", map[string]interface{}{
			"status": string(status),
		})
	})
	defer unsubscribe()
	loader.Check(ctx)

	// Submission gateway
	client, err := gateway.New(cfg.Gateway.client(), log, gateway.WithCertificateStatus(monitor))
	if err != nil {
		return fmt.Errorf("failed to configure gateway: %w", err)
	}
	log.Info(ctx, "gateway configured", map[string]interface{}{
		"endpoint": client.URL(),
		"timeout":  cfg.Gateway.Timeout.String(),
	})

	// Initialize session manager
	var validateOpts []scenario.ValidateOption
	if cfg.Validation.ActionCatalog {
		validateOpts = append(validateOpts, scenario.WithActionCatalog(scenario.ActionTypes))
	}
	sessionManager := session.NewManager(cfg.Session.Duration, func() *editor.Editor {
		// one in-flight submission per session, not per process
		return editor.New(log,
			editor.WithDraftStore(drafts),
			editor.WithSubmitter(client.Clone()),
			editor.WithValidateOptions(validateOpts...),
		)
	}, log)
	sessionManager.StartCleanup(cfg.Session.CleanupInterval)
	defer sessionManager.StopCleanup()

	log.Info(ctx, "session manager initialized", map[string]interface{}{
		"duration": cfg.Session.Duration.String(),
	})

	router := handlers.NewRouter(handlers.RouterConfig{
		Sessions:     sessionManager,
		CertLoader:   loader,
		CertMonitor:  monitor,
		CookieName:   cfg.Session.CookieName,
		CookieSecret: cfg.Session.CookieSecret,
		CookieSecure: cfg.Session.Secure,
		Logger:       log,
		Version:      Version,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}

// openDraftStore returns the configured draft store and a function releasing
// its resources.
func openDraftStore(ctx context.Context, cfg *Config, blobs storage.BlobStorage, log logger.Logger) (draft.Store, func(), error) {
	if cfg.Drafts.Backend == "blob" {
		log.Info(ctx, "drafts stored as objects", map[string]interface{}{
			"storage": cfg.Storage.Type,
		})
		return draft.NewBlobStore(blobs, log), func() {}, nil
	}

	db, err := database.Connect(cfg.Database.connection())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if autoMigrate {
		if err := database.RunMigrations(sqlDB, cfg.Database.Driver, ""); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	log.Info(ctx, "database connected", map[string]interface{}{
		"driver":   cfg.Database.Driver,
		"host":     cfg.Database.Host,
		"database": cfg.Database.Database,
	})

	return draft.NewMySQLStore(db, log), func() { sqlDB.Close() }, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
	"github.com/hairizuan-noorazman/scenario-builder/confirm"
	"github.com/hairizuan-noorazman/scenario-builder/database"
	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/hairizuan-noorazman/scenario-builder/storage"
)

// newPrompt builds the interactive confirmer; tests replace it.
var newPrompt = func() confirm.Confirmer {
	return confirm.Prompt{}
}

func confirmer(skip bool) confirm.Confirmer {
	if skip {
		return confirm.Static(true)
	}
	return newPrompt()
}

func newLogger(w io.Writer) logger.Logger {
	return logger.NewLogrusLogger(cfg.GetString("log.level"),
		logger.WithFormat("text"),
		logger.WithOutput(w),
	)
}

func validateOptions() []scenario.ValidateOption {
	if cfg.GetBool("validation.action_catalog") {
		return []scenario.ValidateOption{scenario.WithActionCatalog(scenario.ActionTypes)}
	}
	return nil
}

func gatewayConfig() gateway.Config {
	return gateway.Config{
		BaseURL: cfg.GetString("gateway.base_url"),
		Path:    cfg.GetString("gateway.path"),
		Timeout: cfg.GetDuration("gateway.timeout"),
	}
}

func blobStorage(ctx context.Context) (storage.BlobStorage, error) {
	blobs, err := storage.NewBlobStorage(ctx, storage.Config{
		Type:     cfg.GetString("storage.type"),
		BaseDir:  cfg.GetString("storage.base_dir"),
		Bucket:   cfg.GetString("storage.s3_bucket"),
		Region:   cfg.GetString("storage.s3_region"),
		S3Prefix: cfg.GetString("storage.s3_prefix"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return blobs, nil
}

// openDraftStore opens the configured draft store. The returned function
// releases it.
func openDraftStore(ctx context.Context, log logger.Logger) (draft.Store, func(), error) {
	switch backend := cfg.GetString("drafts.backend"); backend {
	case "blob":
		blobs, err := blobStorage(ctx)
		if err != nil {
			return nil, nil, err
		}
		return draft.NewBlobStore(blobs, log), func() {}, nil

	case "database":
		dbCfg := database.Config{
			Driver:   cfg.GetString("database.driver"),
			Host:     cfg.GetString("database.host"),
			Port:     cfg.GetInt("database.port"),
			User:     cfg.GetString("database.user"),
			Password: cfg.GetString("database.password"),
			Database: cfg.GetString("database.database"),
		}
		if strings.EqualFold(dbCfg.Driver, "sqlite") {
			if err := os.MkdirAll(filepath.Dir(dbCfg.Database), 0755); err != nil {
				return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		if err := database.RunMigrations(sqlDB, dbCfg.Driver, ""); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return draft.NewMySQLStore(db, log), func() { sqlDB.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported drafts backend %q (want blob or database)", backend)
	}
}

// certificateLoader reads certificates from certs.dir, or from the blob
// storage when it is empty.
func certificateLoader(ctx context.Context, monitor *certs.Monitor, log logger.Logger) (*certs.Loader, error) {
	var (
		blobs storage.BlobStorage
		err   error
	)
	if dir := cfg.GetString("certs.dir"); dir != "" {
		blobs, err = storage.NewLocalStorage(dir)
	} else {
		blobs, err = blobStorage(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open certificate storage: %w", err)
	}
	return certs.NewLoader(blobs, monitor, log), nil
}

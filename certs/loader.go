package certs

import (
	"context"
	"errors"

	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/storage"
)

const (
	// CertFile is the object name of the development certificate.
	CertFile = "cert.pem"

	// KeyFile is the object name of the certificate's private key.
	KeyFile = "key.pem"
)

// Bundle is a loaded certificate and key pair in PEM form.
type Bundle struct {
	Cert string `json:"cert"`
	Key  string `json:"key"`
}

// Loader reads the development certificates from blob storage and publishes
// their availability to a Monitor.
type Loader struct {
	blobs   storage.BlobStorage
	monitor *Monitor
	logger  logger.Logger
}

// NewLoader creates a loader writing to monitor.
func NewLoader(blobs storage.BlobStorage, monitor *Monitor, log logger.Logger) *Loader {
	return &Loader{
		blobs:   blobs,
		monitor: monitor,
		logger:  log,
	}
}

// Load returns the certificate bundle, or nil when either file is missing.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	cert, err := storage.ReadAll(ctx, l.blobs, CertFile)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	key, err := storage.ReadAll(ctx, l.blobs, KeyFile)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &Bundle{Cert: string(cert), Key: string(key)}, nil
}

// Check loads the certificates, publishes the result and reports whether
// they are available. Read failures count as missing.
func (l *Loader) Check(ctx context.Context) bool {
	bundle, err := l.Load(ctx)
	if err != nil {
		l.logger.Warn(ctx, "certificate check failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	available := err == nil && bundle != nil
	if available {
		l.monitor.Set(StatusLoaded)
	} else {
		l.monitor.Set(StatusMissing)
	}

	l.logger.Debug(ctx, "certificate status checked", map[string]interface{}{
		"status": string(l.monitor.Get()),
	})
	return available
}

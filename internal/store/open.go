package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/leakguard/internal/model"
)

// OpenBackend creates the backend selected by the store configuration
func OpenBackend(cfg model.StoreConfig, logger *slog.Logger) (Backend, error) {
	path, err := ExpandHome(cfg.Path)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case "file", "":
		return NewFileBackend(path), nil
	case "badger":
		return OpenBadger(BadgerConfig{
			Path:       path,
			SyncWrites: true,
			Logger:     logger,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// OpenConfigured opens the backend from configuration and loads the store
func OpenConfigured(ctx context.Context, cfg model.StoreConfig, logger *slog.Logger) (*Store, error) {
	backend, err := OpenBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	s, err := Open(ctx, backend, logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return s, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

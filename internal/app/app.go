// Package app wires configuration into the catalog, the progress store and
// session options shared by the bot and the CLI.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/config"
	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/repository"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
	"github.com/aliskhannn/dgt-vocab-bot/internal/storage"
)

// LoadCatalog reads the vocabulary catalog from cfg.CardsPath.
func LoadCatalog(cfg *config.Config, logger *zap.Logger) (*repository.CardRepository, error) {
	repo, err := repository.Load(cfg.CardsPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CardsPath, err)
	}

	logger.Info("catalog loaded",
		zap.String("path", cfg.CardsPath),
		zap.Int("cards", repo.Len()),
		zap.Int("categories", len(repo.Categories())),
		zap.Int("topics", len(repo.Topics())),
	)
	return repo, nil
}

// OpenStore opens the configured progress store.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.KVStore, func() error, error) {
	store, closeFn, err := storage.Open(ctx, storage.Options{
		Driver:          cfg.Storage.Driver,
		FilePath:        cfg.Storage.FilePath,
		SQLitePath:      cfg.Storage.SQLitePath,
		DatabaseURL:     cfg.DB.URL,
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
		Logger:          logger,
	})
	if err != nil {
		return nil, closeFn, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}

	logger.Info("progress store opened", zap.String("driver", cfg.Storage.Driver))
	return store, closeFn, nil
}

// SessionOptions maps the quiz configuration onto session options.
func SessionOptions(cfg *config.Config) service.SessionOptions {
	return service.SessionOptions{
		MinCards:    cfg.Quiz.MinCards,
		MaxOptions:  cfg.Quiz.MaxOptions,
		MaxAttempts: cfg.Quiz.MaxAttempts,
		Language:    entities.Language(cfg.Language),
	}
}

package catalog

import (
	"context"
	"log/slog"

	"catalog/config"
	"catalog/internal/domain/repository"
)

// NewProductRepository builds the store and seeds the demo catalog when configured.
func NewProductRepository(cfg *config.Config, logger *slog.Logger) (repository.ProductRepository, error) {
	store := NewStore()
	if !cfg.Catalog.SeedDemoData {
		return store, nil
	}

	if err := Seed(context.Background(), store); err != nil {
		return nil, err
	}
	logger.Info("Seeded demo catalog", slog.Int("products", len(demoProducts)))

	return store, nil
}

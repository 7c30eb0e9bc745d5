package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"repairdesk/internal/domain/services"
	"repairdesk/internal/storage"
)

// CatalogService owns the fixed set of offerable services.
type CatalogService struct {
	storage storage.ServiceStorage
	log     *slog.Logger
}

func NewCatalogService(store storage.ServiceStorage, log *slog.Logger) *CatalogService {
	if log == nil {
		log = slog.Default()
	}

	return &CatalogService{
		storage: store,
		log:     log,
	}
}

// SeedDefaults inserts defaults only when the catalog is empty. Calling it
// again on a non-empty catalog is a no-op.
func (s *CatalogService) SeedDefaults(ctx context.Context, defaults []*services.Service) error {
	count, err := s.storage.CountServices(ctx)
	if err != nil {
		return fmt.Errorf("storage.CountServices: %w", err)
	}

	if count > 0 {
		return nil
	}

	for _, svc := range defaults {
		if err := s.storage.CreateService(ctx, svc); err != nil {
			if errors.Is(err, storage.ErrServiceAlreadyExists) {
				continue
			}

			return fmt.Errorf("storage.CreateService: %w", err)
		}
	}

	s.log.Info("catalog seeded", slog.Int("services", len(defaults)))

	return nil
}

func (s *CatalogService) Add(ctx context.Context, svc *services.Service) error {
	if err := s.storage.CreateService(ctx, svc); err != nil {
		if errors.Is(err, storage.ErrServiceAlreadyExists) {
			return err
		}

		return fmt.Errorf("storage.CreateService: %w", err)
	}

	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]*services.Service, error) {
	svcs, err := s.storage.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.ListServices: %w", err)
	}

	return svcs, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*services.Service, error) {
	svc, err := s.storage.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("storage.GetService: %w", err)
	}

	return svc, nil
}

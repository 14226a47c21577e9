package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/utils/seeddata"
)

// SeedSource produces the data written by the seed service.
type SeedSource func() (*seeddata.SeedFile, error)

// OrderCreationNotifier raises creation triggers for orders that were written
// outside the observed order repository.
type OrderCreationNotifier interface {
	NotifyCreated(ctx context.Context, orderIDs ...string)
}

type seedService struct {
	BaseService
	userRepo  portsrepo.UserReader
	orderRepo portsrepo.OrderReader
	seedRepo  portsrepo.SeedRepository
	notifier  OrderCreationNotifier
	source    SeedSource
}

// NewSeedService creates a seed service. A nil source falls back to the
// embedded default data set.
func NewSeedService(userRepo portsrepo.UserReader, orderRepo portsrepo.OrderReader, seedRepo portsrepo.SeedRepository, notifier OrderCreationNotifier, source SeedSource) portssvc.SeedSvc {
	if source == nil {
		source = seeddata.Default
	}
	return &seedService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		seedRepo:  seedRepo,
		notifier:  notifier,
		source:    source,
	}
}

var _ portssvc.SeedSvc = (*seedService)(nil)

func (s *seedService) Seed(ctx context.Context) (*dto.SeedResponse, error) {
	userCount, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count users before seeding")
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	orderCount, err := s.orderRepo.CountOrders(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count orders before seeding")
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if userCount > 0 || orderCount > 0 {
		s.LogWarn(ctx, "Refusing to seed a non-empty store", slog.Int("users", userCount), slog.Int("orders", orderCount))
		return nil, fmt.Errorf("store already holds %d users and %d orders: %w", userCount, orderCount, apperrors.ErrConflict)
	}

	file, err := s.source()
	if err != nil {
		s.LogError(ctx, err, "Failed to load seed data")
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	users, orders, err := file.ToDomain(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("invalid seed data (%v): %w", err, apperrors.ErrValidation)
	}

	if err := s.seedRepo.SeedBatch(ctx, users, orders); err != nil {
		s.LogError(ctx, err, "Failed to write seed batch")
		return nil, fmt.Errorf("failed to write seed batch: %w", err)
	}

	if s.notifier != nil {
		ids := make([]string, len(orders))
		for i, o := range orders {
			ids[i] = o.OrderID
		}
		s.notifier.NotifyCreated(ctx, ids...)
	}

	s.LogInfo(ctx, "Store seeded", slog.Int("users", len(users)), slog.Int("orders", len(orders)))
	return &dto.SeedResponse{
		Message:      "Database seeded successfully",
		UsersSeeded:  len(users),
		OrdersSeeded: len(orders),
	}, nil
}

package services

import (
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/platform/config"
	"github.com/SscSPs/etsy_atlas/internal/repositories/triggers"
)

type containerOptions struct {
	seedSource SeedSource
}

// ContainerOption customises NewServiceContainer.
type ContainerOption func(*containerOptions)

// WithSeedSource replaces the embedded seed data.
func WithSeedSource(source SeedSource) ContainerOption {
	return func(o *containerOptions) {
		o.seedSource = source
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Order writes go through a trigger-observed repository with the recalculator
// registered, so every create and update repopulates the derived order fields.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, verifier portssvc.IdentityVerifier, opts ...ContainerOption) *portssvc.ServiceContainer {
	var o containerOptions
	for _, opt := range opts {
		opt(&o)
	}

	container := &portssvc.ServiceContainer{}

	observedOrders := triggers.NewObservedOrderRepository(repos.OrderRepo)
	recalculator := NewOrderRecalculator(observedOrders)
	observedOrders.Observe(recalculator.(portsrepo.OrderWriteObserver))
	container.Recalculator = recalculator

	userSvc := NewUserService(repos.UserRepo, domain.UserRole(cfg.DefaultNewUserRole))
	container.User = userSvc

	container.Order = NewOrderService(observedOrders)
	container.Product = NewProductService(repos.ProductRepo)
	container.Capital = NewCapitalService(repos.CapitalRepo)

	container.Session = NewSessionService(SessionConfig{
		Secret: cfg.SessionSecret,
		Issuer: cfg.SessionIssuer,
		Expiry: cfg.SessionExpiryDuration,
	}, verifier, userSvc)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	container.Seed = NewSeedService(repos.UserRepo, repos.OrderRepo, repos.SeedRepo, observedOrders, o.seedSource)

	return container
}

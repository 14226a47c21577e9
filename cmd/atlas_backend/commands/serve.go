package commands

import (
	"context"
	"log/slog"

	"github.com/SscSPs/etsy_atlas/internal/adapters/identity"
	"github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	coreservices "github.com/SscSPs/etsy_atlas/internal/core/services"
	"github.com/SscSPs/etsy_atlas/internal/handlers"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/SscSPs/etsy_atlas/internal/platform/config"
	"github.com/SscSPs/etsy_atlas/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newIdentityVerifier never fails: a provider that cannot be initialised is
// replaced by one that reports a server configuration error on every sign-in.
func newIdentityVerifier(ctx context.Context, cfg *config.Config) services.IdentityVerifier {
	switch cfg.IdentityProvider {
	case config.IdentityProviderGoogle:
		if cfg.GoogleClientID == "" {
			return identity.Unconfigured{Reason: "GOOGLE_CLIENT_ID not set"}
		}
		return identity.NewGoogleVerifier(cfg.GoogleClientID)
	default:
		verifier, err := identity.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseServiceAccount)
		if err != nil {
			logger.Error("Failed to initialize Firebase verifier", slog.String("error", err.Error()))
			return identity.Unconfigured{Reason: err.Error()}
		}
		return verifier
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		return err
	}

	repos, closeStore, err := openStore(ctx, cfg)
	defer closeStore()
	if err != nil {
		logger.Error("Failed to open store", slog.String("error", err.Error()))
		return err
	}

	verifier := newIdentityVerifier(ctx, cfg)
	serviceContainer := coreservices.NewServiceContainer(cfg, repos, verifier)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		return err
	}
	return nil
}

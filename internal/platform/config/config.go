package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	IdentityProviderFirebase = "firebase"
	IdentityProviderGoogle   = "google"

	defaultSessionSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultSessionExpiry = 5 * 24 * time.Hour
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StoreDriver   string
	DatabaseURL   string
	EnableDBCheck bool
	MigrationsURL string

	// Session artifact
	SessionSecret         string
	SessionIssuer         string
	SessionExpiryDuration time.Duration
	SessionCookieName     string

	// Identity provider
	IdentityProvider       string
	FirebaseProjectID      string
	FirebaseServiceAccount string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Pages
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	FrontendDir     string
	DashboardPath   string
	LoginPath       string

	// Import webhook
	ImportAPIKeyHash   string
	CORSAllowedOrigins []string

	// Rate limits in ulule/limiter format, e.g. "10-M"
	SessionRateLimit string
	ImportRateLimit  string

	PosthogAPIKey      string
	PosthogEndpoint    string
	DefaultNewUserRole string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_ISSUER", "etsy-atlas")
	viper.SetDefault("SESSION_EXPIRY_DURATION", defaultSessionExpiry.String())
	viper.SetDefault("SESSION_COOKIE_NAME", "session")
	viper.SetDefault("IDENTITY_PROVIDER", IdentityProviderFirebase)
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FIREBASE_SERVICE_ACCOUNT", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("FRONTEND_DIR", "web/dist")
	viper.SetDefault("DASHBOARD_PATH", "/dashboard")
	viper.SetDefault("LOGIN_PATH", "/login")
	viper.SetDefault("IMPORT_API_KEY_HASH", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("SESSION_RATE_LIMIT", "10-M")
	viper.SetDefault("IMPORT_RATE_LIMIT", "60-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("DEFAULT_NEW_USER_ROLE", "user")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		StoreDriver:            strings.ToLower(viper.GetString("STORE_DRIVER")),
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		SessionSecret:          viper.GetString("SESSION_SECRET"),
		SessionIssuer:          viper.GetString("SESSION_ISSUER"),
		SessionCookieName:      viper.GetString("SESSION_COOKIE_NAME"),
		IdentityProvider:       strings.ToLower(viper.GetString("IDENTITY_PROVIDER")),
		FirebaseProjectID:      viper.GetString("FIREBASE_PROJECT_ID"),
		FirebaseServiceAccount: viper.GetString("FIREBASE_SERVICE_ACCOUNT"),
		GoogleClientID:         viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:     viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:      viper.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:        viper.GetString("FRONTEND_BASE_URL"),
		FrontendDir:            viper.GetString("FRONTEND_DIR"),
		DashboardPath:          viper.GetString("DASHBOARD_PATH"),
		LoginPath:              viper.GetString("LOGIN_PATH"),
		ImportAPIKeyHash:       viper.GetString("IMPORT_API_KEY_HASH"),
		SessionRateLimit:       viper.GetString("SESSION_RATE_LIMIT"),
		ImportRateLimit:        viper.GetString("IMPORT_RATE_LIMIT"),
		PosthogAPIKey:          viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:        viper.GetString("POSTHOG_ENDPOINT"),
		DefaultNewUserRole:     strings.ToLower(viper.GetString("DEFAULT_NEW_USER_ROLE")),
	}

	cfg.MigrationsURL = "file://" + strings.TrimPrefix(viper.GetString("MIGRATIONS_PATH"), "file://")

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverMemory:
		log.Println("Warning: STORE_DRIVER=memory. Data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %q or %q)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = defaultSessionSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: SESSION_SECRET environment variable not set. Using default insecure key.")
	}

	expiryStr := viper.GetString("SESSION_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil || expiry <= 0 {
		expiry = defaultSessionExpiry
		log.Printf("Warning: Invalid value for SESSION_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", expiryStr, expiry.String())
	}
	cfg.SessionExpiryDuration = expiry

	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "session"
	}

	switch cfg.IdentityProvider {
	case IdentityProviderFirebase:
		if cfg.FirebaseProjectID == "" && cfg.FirebaseServiceAccount == "" {
			log.Println("Warning: FIREBASE_PROJECT_ID and FIREBASE_SERVICE_ACCOUNT not set. Sign-in will report a server configuration error.")
		}
	case IdentityProviderGoogle:
		if cfg.GoogleClientID == "" {
			log.Println("Warning: GOOGLE_CLIENT_ID not set. Sign-in will report a server configuration error.")
		}
	default:
		return nil, fmt.Errorf("unknown IDENTITY_PROVIDER %q (want %q or %q)", cfg.IdentityProvider, IdentityProviderFirebase, IdentityProviderGoogle)
	}

	if cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google code exchange will not function.")
	}

	if cfg.ImportAPIKeyHash == "" {
		log.Println("Warning: IMPORT_API_KEY_HASH not set. The order import endpoint accepts unauthenticated requests.")
	}

	if cfg.DefaultNewUserRole != "admin" && cfg.DefaultNewUserRole != "user" {
		log.Printf("Warning: Invalid DEFAULT_NEW_USER_ROLE ('%s'). Defaulting to user.\n", cfg.DefaultNewUserRole)
		cfg.DefaultNewUserRole = "user"
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.DashboardPath = normalisePath(cfg.DashboardPath, "/dashboard")
	cfg.LoginPath = normalisePath(cfg.LoginPath, "/login")

	return cfg, nil
}

func normalisePath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return fallback
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

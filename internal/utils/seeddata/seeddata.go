// Package seeddata loads the demo users and orders written by the seed command.
package seeddata

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default_seed.yaml
var defaultSeed []byte

const dateLayout = "2006-01-02"

// SeedFile is the YAML document describing seed data.
type SeedFile struct {
	Version string      `yaml:"version"`
	Users   []SeedUser  `yaml:"users"`
	Orders  []SeedOrder `yaml:"orders"`
}

type SeedUser struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type SeedOrder struct {
	EtsyOrderID    string `yaml:"etsyOrderId"`
	OrderDate      string `yaml:"orderDate"`
	Status         string `yaml:"status"`
	OrderPrice     string `yaml:"orderPrice"`
	OrderCost      string `yaml:"orderCost"`
	ShippingCost   string `yaml:"shippingCost"`
	AdditionalFees string `yaml:"additionalFees"`
	Notes          string `yaml:"notes"`
	TrackingNumber string `yaml:"trackingNumber"`
}

// Default returns the built-in seed data.
func Default() (*SeedFile, error) {
	return Parse(defaultSeed)
}

// LoadFile loads and parses a YAML seed file from the given path.
func LoadFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a SeedFile.
func Parse(data []byte) (*SeedFile, error) {
	var sf SeedFile

	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	applyDefaults(&sf)

	return &sf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(sf *SeedFile) {
	if sf.Version == "" {
		sf.Version = "1"
	}
	for i := range sf.Users {
		u := &sf.Users[i]
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		if u.Role == "" {
			u.Role = string(domain.RoleUser)
		}
	}
	for i := range sf.Orders {
		o := &sf.Orders[i]
		if o.Status == "" {
			o.Status = string(domain.OrderPending)
		}
	}
}

// ToDomain converts the seed file into domain values stamped with now.
// Derived order fields are left absent for the recalculator to fill in.
func (sf *SeedFile) ToDomain(now time.Time) ([]domain.User, []domain.Order, error) {
	users := make([]domain.User, 0, len(sf.Users))
	for _, su := range sf.Users {
		role := domain.UserRole(su.Role)
		if !role.IsValid() {
			return nil, nil, fmt.Errorf("seed user %s: invalid role %q", su.Email, su.Role)
		}
		users = append(users, domain.User{
			UserID:    su.ID,
			Name:      su.Name,
			Email:     strings.ToLower(su.Email),
			Role:      role,
			CreatedAt: now,
		})
	}

	orders := make([]domain.Order, 0, len(sf.Orders))
	for _, so := range sf.Orders {
		order, err := so.toDomain(now)
		if err != nil {
			return nil, nil, fmt.Errorf("seed order %s: %w", so.EtsyOrderID, err)
		}
		orders = append(orders, order)
	}
	return users, orders, nil
}

func (so SeedOrder) toDomain(now time.Time) (domain.Order, error) {
	if so.EtsyOrderID == "" {
		return domain.Order{}, fmt.Errorf("etsyOrderId is required")
	}
	status := domain.OrderStatus(so.Status)
	if !status.IsValid() {
		return domain.Order{}, fmt.Errorf("invalid status %q", so.Status)
	}

	orderDate := now
	if so.OrderDate != "" {
		d, err := time.Parse(dateLayout, so.OrderDate)
		if err != nil {
			return domain.Order{}, fmt.Errorf("invalid orderDate: %w", err)
		}
		orderDate = d
	}

	amounts := make([]decimal.Decimal, 4)
	for i, raw := range []string{so.OrderPrice, so.OrderCost, so.ShippingCost, so.AdditionalFees} {
		if raw == "" {
			amounts[i] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Order{}, fmt.Errorf("invalid amount %q: %w", raw, err)
		}
		amounts[i] = d
	}

	return domain.Order{
		OrderID:        uuid.NewString(),
		EtsyOrderID:    so.EtsyOrderID,
		OrderDate:      orderDate,
		Status:         status,
		OrderPrice:     amounts[0],
		OrderCost:      amounts[1],
		ShippingCost:   amounts[2],
		AdditionalFees: amounts[3],
		Notes:          so.Notes,
		TrackingNumber: so.TrackingNumber,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}, nil
}

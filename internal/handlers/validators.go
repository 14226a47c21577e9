package handlers

import (
	"fmt"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the enum validators used by the request DTOs
// (order_status, capital_type, user_role) to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	validators := map[string]validator.Func{
		"order_status": func(fl validator.FieldLevel) bool {
			return domain.OrderStatus(fl.Field().String()).IsValid()
		},
		"capital_type": func(fl validator.FieldLevel) bool {
			return domain.CapitalType(fl.Field().String()).IsValid()
		},
		"user_role": func(fl validator.FieldLevel) bool {
			return domain.UserRole(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

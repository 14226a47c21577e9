package dto

import (
	"time"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCapitalEntryRequest defines the data needed to record a capital movement.
type CreateCapitalEntryRequest struct {
	Type            string          `json:"type" binding:"required,capital_type"`
	Amount          decimal.Decimal `json:"amount"`
	Source          string          `json:"source" binding:"required"`
	Notes           string          `json:"notes"`
	ReferenceID     string          `json:"referenceId"`
	TransactionDate *time.Time      `json:"transactionDate"`
}

// ListCapitalParams defines query parameters for listing capital entries.
type ListCapitalParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// CapitalEntryResponse defines the data returned for a capital entry.
type CapitalEntryResponse struct {
	EntryID         string          `json:"id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Source          string          `json:"source"`
	SubmittedBy     string          `json:"submittedBy"`
	Notes           string          `json:"notes,omitempty"`
	ReferenceID     string          `json:"referenceId,omitempty"`
	Locked          bool            `json:"locked"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListCapitalResponse wraps the list of capital entries.
type ListCapitalResponse struct {
	Entries []CapitalEntryResponse `json:"entries"`
}

func ToCapitalEntryResponse(e *domain.CapitalEntry) CapitalEntryResponse {
	return CapitalEntryResponse{
		EntryID:         e.EntryID,
		Type:            string(e.Type),
		Amount:          e.Amount,
		Source:          e.Source,
		SubmittedBy:     e.SubmittedBy,
		Notes:           e.Notes,
		ReferenceID:     e.ReferenceID,
		Locked:          e.Locked,
		TransactionDate: e.TransactionDate,
		CreatedAt:       e.CreatedAt,
	}
}

func ToListCapitalResponse(entries []domain.CapitalEntry) ListCapitalResponse {
	responses := make([]CapitalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToCapitalEntryResponse(&entries[i])
	}
	return ListCapitalResponse{Entries: responses}
}

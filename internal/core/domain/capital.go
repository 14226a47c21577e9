package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalType is the direction of a capital movement.
type CapitalType string

const (
	CapitalDeposit    CapitalType = "Deposit"
	CapitalWithdrawal CapitalType = "Withdrawal"
)

func (t CapitalType) IsValid() bool {
	return t == CapitalDeposit || t == CapitalWithdrawal
}

// CapitalEntry records money moving into or out of the business.
// Locked entries cannot be deleted.
type CapitalEntry struct {
	EntryID         string          `json:"id"`
	Type            CapitalType     `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Source          string          `json:"source"`
	SubmittedBy     string          `json:"submittedBy"`
	Notes           string          `json:"notes,omitempty"`
	ReferenceID     string          `json:"referenceId,omitempty"`
	Locked          bool            `json:"locked"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CapitalSummary aggregates all capital entries.
type CapitalSummary struct {
	TotalDeposits    decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	EntryCount       int             `json:"entryCount"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalEntry is the row shape of the capital_entries table.
type CapitalEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryType       string          `db:"entry_type"`
	Amount          decimal.Decimal `db:"amount"`
	Source          string          `db:"source"`
	SubmittedBy     string          `db:"submitted_by"`
	Notes           string          `db:"notes"`
	ReferenceID     string          `db:"reference_id"`
	Locked          bool            `db:"locked"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

package mapping

import (
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/models"
)

// ToModelCapitalEntry converts a domain CapitalEntry to a model CapitalEntry
func ToModelCapitalEntry(d domain.CapitalEntry) models.CapitalEntry {
	return models.CapitalEntry{
		EntryID:         d.EntryID,
		EntryType:       string(d.Type),
		Amount:          d.Amount,
		Source:          d.Source,
		SubmittedBy:     d.SubmittedBy,
		Notes:           d.Notes,
		ReferenceID:     d.ReferenceID,
		Locked:          d.Locked,
		TransactionDate: d.TransactionDate,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainCapitalEntry converts a model CapitalEntry to a domain CapitalEntry
func ToDomainCapitalEntry(m models.CapitalEntry) domain.CapitalEntry {
	return domain.CapitalEntry{
		EntryID:         m.EntryID,
		Type:            domain.CapitalType(m.EntryType),
		Amount:          m.Amount,
		Source:          m.Source,
		SubmittedBy:     m.SubmittedBy,
		Notes:           m.Notes,
		ReferenceID:     m.ReferenceID,
		Locked:          m.Locked,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
	}
}

func ToDomainCapitalEntrySlice(ms []models.CapitalEntry) []domain.CapitalEntry {
	ds := make([]domain.CapitalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCapitalEntry(m)
	}
	return ds
}

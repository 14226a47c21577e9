package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/utils/accounting"
	"github.com/google/uuid"
)

type capitalService struct {
	BaseService
	capitalRepo portsrepo.CapitalRepositoryFacade
}

func NewCapitalService(capitalRepo portsrepo.CapitalRepositoryFacade) portssvc.CapitalSvcFacade {
	return &capitalService{capitalRepo: capitalRepo}
}

var _ portssvc.CapitalSvcFacade = (*capitalService)(nil)

// CreateCapitalEntry records a capital movement. Entries are locked on creation.
func (s *capitalService) CreateCapitalEntry(ctx context.Context, req dto.CreateCapitalEntryRequest, submittedBy string) (*domain.CapitalEntry, error) {
	entryType := domain.CapitalType(req.Type)
	if !entryType.IsValid() {
		return nil, fmt.Errorf("unknown capital type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("capital amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return nil, fmt.Errorf("capital source is required: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entry := domain.CapitalEntry{
		EntryID:         uuid.NewString(),
		Type:            entryType,
		Amount:          req.Amount,
		Source:          source,
		SubmittedBy:     submittedBy,
		Notes:           req.Notes,
		ReferenceID:     req.ReferenceID,
		Locked:          true,
		TransactionDate: now,
		CreatedAt:       now,
	}
	if req.TransactionDate != nil && !req.TransactionDate.IsZero() {
		entry.TransactionDate = req.TransactionDate.UTC()
	}

	if err := s.capitalRepo.SaveCapitalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save capital entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to create capital entry in service: %w", err)
	}
	s.LogInfo(ctx, "Capital entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.Type)),
		slog.String("amount", entry.Amount.StringFixed(2)))
	return &entry, nil
}

func (s *capitalService) GetCapitalEntry(ctx context.Context, entryID string) (*domain.CapitalEntry, error) {
	entry, err := s.capitalRepo.FindCapitalEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get capital entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to get capital entry in service: %w", err)
	}
	return entry, nil
}

func (s *capitalService) ListCapitalEntries(ctx context.Context, limit, offset int) ([]domain.CapitalEntry, error) {
	entries, err := s.capitalRepo.ListCapitalEntries(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list capital entries")
		return nil, fmt.Errorf("failed to list capital entries in service: %w", err)
	}
	if entries == nil {
		return []domain.CapitalEntry{}, nil
	}
	return entries, nil
}

func (s *capitalService) Summary(ctx context.Context) (*domain.CapitalSummary, error) {
	sums, count, err := s.capitalRepo.SumCapitalByType(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum capital entries")
		return nil, fmt.Errorf("failed to summarise capital in service: %w", err)
	}
	summary := accounting.CalculateCapitalSummary(sums, count)
	return &summary, nil
}

// DeleteCapitalEntry removes an entry. Locked entries are rejected with
// apperrors.ErrLocked before the store is asked.
func (s *capitalService) DeleteCapitalEntry(ctx context.Context, entryID string) error {
	entry, err := s.GetCapitalEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Locked {
		s.LogWarn(ctx, "Refusing to delete locked capital entry", slog.String("entry_id", entryID))
		return fmt.Errorf("capital entry %s: %w", entryID, apperrors.ErrLocked)
	}

	if err := s.capitalRepo.DeleteCapitalEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrLocked) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete capital entry", slog.String("entry_id", entryID))
		}
		return fmt.Errorf("failed to delete capital entry in service: %w", err)
	}
	s.LogInfo(ctx, "Capital entry deleted", slog.String("entry_id", entryID))
	return nil
}

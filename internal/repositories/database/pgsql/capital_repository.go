package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/SscSPs/etsy_atlas/internal/models"
	"github.com/SscSPs/etsy_atlas/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCapitalRepository struct {
	BaseRepository
}

func newPgxCapitalRepository(pool *pgxpool.Pool) portsrepo.CapitalRepositoryWithTx {
	return &PgxCapitalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CapitalRepositoryWithTx = (*PgxCapitalRepository)(nil)

func scanCapitalEntry(row pgx.Row) (models.CapitalEntry, error) {
	var m models.CapitalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryType,
		&m.Amount,
		&m.Source,
		&m.SubmittedBy,
		&m.Notes,
		&m.ReferenceID,
		&m.Locked,
		&m.TransactionDate,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxCapitalRepository) FindCapitalEntryByID(ctx context.Context, entryID string) (*domain.CapitalEntry, error) {
	query := `
		SELECT entry_id, entry_type, amount, source, submitted_by, notes, reference_id, locked, transaction_date, created_at
		FROM capital_entries
		WHERE entry_id = $1;`

	m, err := scanCapitalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find capital entry by ID %s: %w", entryID, err)
	}
	e := mapping.ToDomainCapitalEntry(m)
	return &e, nil
}

func (r *PgxCapitalRepository) ListCapitalEntries(ctx context.Context, limit int, offset int) ([]domain.CapitalEntry, error) {
	limit, offset = pageBounds(limit, offset)
	query := `
		SELECT entry_id, entry_type, amount, source, submitted_by, notes, reference_id, locked, transaction_date, created_at
		FROM capital_entries
		ORDER BY transaction_date DESC, entry_id DESC
		LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list capital entries: %w", err)
	}
	defer rows.Close()

	var entries []models.CapitalEntry
	for rows.Next() {
		m, err := scanCapitalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capital entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capital entry rows: %w", err)
	}
	return mapping.ToDomainCapitalEntrySlice(entries), nil
}

func (r *PgxCapitalRepository) SumCapitalByType(ctx context.Context) (map[domain.CapitalType]decimal.Decimal, int, error) {
	query := `
		SELECT entry_type, COALESCE(SUM(amount), 0), COUNT(*)
		FROM capital_entries
		GROUP BY entry_type;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sum capital entries: %w", err)
	}
	defer rows.Close()

	sums := map[domain.CapitalType]decimal.Decimal{
		domain.CapitalDeposit:    decimal.Zero,
		domain.CapitalWithdrawal: decimal.Zero,
	}
	total := 0
	for rows.Next() {
		var (
			entryType string
			sum       decimal.Decimal
			count     int
		)
		if err := rows.Scan(&entryType, &sum, &count); err != nil {
			return nil, 0, fmt.Errorf("failed to scan capital sum row: %w", err)
		}
		sums[domain.CapitalType(entryType)] = sum
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating capital sum rows: %w", err)
	}
	return sums, total, nil
}

func (r *PgxCapitalRepository) SaveCapitalEntry(ctx context.Context, entry domain.CapitalEntry) error {
	m := mapping.ToModelCapitalEntry(entry)
	query := `
		INSERT INTO capital_entries (
			entry_id, entry_type, amount, source, submitted_by, notes, reference_id, locked, transaction_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.EntryType, m.Amount, m.Source, m.SubmittedBy, m.Notes, m.ReferenceID, m.Locked, m.TransactionDate, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: capital entry with ID %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to save capital entry %s: %w", m.EntryID, err)
	}
	return nil
}

// DeleteCapitalEntry refuses locked rows inside the statement itself.
func (r *PgxCapitalRepository) DeleteCapitalEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM capital_entries WHERE entry_id = $1 AND NOT locked;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete capital entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM capital_entries WHERE entry_id = $1);`, entryID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check capital entry %s: %w", entryID, err)
	}
	if exists {
		return apperrors.ErrLocked
	}
	return apperrors.ErrNotFound
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/SscSPs/etsy_atlas/internal/models"
	"github.com/SscSPs/etsy_atlas/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryWithTx {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryWithTx
var _ portsrepo.UserRepositoryWithTx = (*PgxUserRepository)(nil)

const insertUserQuery = `
	INSERT INTO users (user_id, name, email, role, photo_url, disabled, created_at, last_login_at, sessions_revoked_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

func insertUserArgs(m models.User) []any {
	return []any{
		m.UserID,
		m.Name,
		m.Email,
		m.Role,
		m.PhotoURL,
		m.Disabled,
		m.CreatedAt,
		m.LastLoginAt,
		m.SessionsRevokedAt,
	}
}

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Role,
		&m.PhotoURL,
		&m.Disabled,
		&m.CreatedAt,
		&m.LastLoginAt,
		&m.SessionsRevokedAt,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	if _, err := r.Pool.Exec(ctx, insertUserQuery, insertUserArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user with ID %s already exists", apperrors.ErrDuplicate, m.UserID)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, role, photo_url, disabled, created_at, last_login_at, sessions_revoked_at
		FROM users
		WHERE user_id = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	limit, offset = pageBounds(limit, offset)
	query := `
		SELECT user_id, name, email, role, photo_url, disabled, created_at, last_login_at, sessions_revoked_at
		FROM users
		ORDER BY created_at DESC, user_id ASC
		LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(users), nil
}

func (r *PgxUserRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users SET
			name = $2, email = $3, role = $4, photo_url = $5, disabled = $6
		WHERE user_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, m.UserID, m.Name, m.Email, m.Role, m.PhotoURL, m.Disabled)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", m.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) setTimestamp(ctx context.Context, column, userID string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE users SET %s = $2 WHERE user_id = $1;`, column)
	tag, err := r.Pool.Exec(ctx, query, userID, at)
	if err != nil {
		return fmt.Errorf("failed to set %s for user %s: %w", column, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.setTimestamp(ctx, "last_login_at", userID, at)
}

func (r *PgxUserRepository) RevokeSessions(ctx context.Context, userID string, at time.Time) error {
	return r.setTimestamp(ctx, "sessions_revoked_at", userID, at)
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SaveUsersBatch(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertUsers(ctx, tx, users); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertUsers(ctx context.Context, tx pgx.Tx, users []domain.User) error {
	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(insertUserQuery, insertUserArgs(mapping.ToModelUser(u))...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user batch contains an existing id", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to execute user batch", err)
	}
	return nil
}

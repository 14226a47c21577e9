package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/SscSPs/etsy_atlas/internal/models"
	"github.com/SscSPs/etsy_atlas/internal/utils/mapping"
	"github.com/SscSPs/etsy_atlas/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `order_id, etsy_order_id, order_date, status, order_price, order_cost,
		shipping_cost, additional_fees, total_expenses, profit, notes, tracking_number,
		created_by_uid, created_by_email, edited_at, edited_by, created_at, updated_at`

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepositoryWithTx
var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.EtsyOrderID,
		&m.OrderDate,
		&m.Status,
		&m.OrderPrice,
		&m.OrderCost,
		&m.ShippingCost,
		&m.AdditionalFees,
		&m.TotalExpenses,
		&m.Profit,
		&m.Notes,
		&m.TrackingNumber,
		&m.CreatedByUID,
		&m.CreatedByEmail,
		&m.EditedAt,
		&m.EditedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return mapping.ToDomainOrderSlice(out), nil
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}
	order := mapping.ToDomainOrder(m)
	return &order, nil
}

// filterClause renders the WHERE conditions for f starting at placeholder $start.
func filterClause(f domain.OrderFilter, start int) ([]string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, start+len(args)-1))
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.From != nil {
		add("order_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("order_date <= $%d", *f.To)
	}
	return conds, args
}

// ListOrders pages newest first on (created_at, order_id).
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter, limit int, nextToken *string) ([]domain.Order, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	conds, args := filterClause(filter, 1)
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor.At, cursor.ID)
		conds = append(conds, fmt.Sprintf("(created_at, order_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	// One extra row tells us whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, order_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, nil, err
	}

	if len(orders) <= limit {
		return orders, nil, nil
	}
	orders = orders[:limit]
	last := orders[len(orders)-1]
	token := pagination.EncodeCursor(last.CreatedAt, last.OrderID)
	return orders, &token, nil
}

func (r *PgxOrderRepository) ListAllOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	conds, args := filterClause(filter, 1)
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, order_id DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	return collectOrders(rows)
}

func (r *PgxOrderRepository) CountOrders(ctx context.Context) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

const insertOrderQuery = `
	INSERT INTO orders (` + orderColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`

func insertOrderArgs(m models.Order) []any {
	return []any{
		m.OrderID,
		m.EtsyOrderID,
		m.OrderDate,
		m.Status,
		m.OrderPrice,
		m.OrderCost,
		m.ShippingCost,
		m.AdditionalFees,
		m.TotalExpenses,
		m.Profit,
		m.Notes,
		m.TrackingNumber,
		m.CreatedByUID,
		m.CreatedByEmail,
		m.EditedAt,
		m.EditedBy,
		m.CreatedAt,
		m.UpdatedAt,
	}
}

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	if _, err := r.Pool.Exec(ctx, insertOrderQuery, insertOrderArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order with ID %s already exists", apperrors.ErrDuplicate, m.OrderID)
		}
		return fmt.Errorf("failed to save order %s: %w", m.OrderID, err)
	}
	return nil
}

// UpdateOrder writes the editable columns. total_expenses and profit are
// owned by MergeOrderFields and are never touched here.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	query := `
		UPDATE orders SET
			etsy_order_id = $2,
			order_date = $3,
			status = $4,
			order_price = $5,
			order_cost = $6,
			shipping_cost = $7,
			additional_fees = $8,
			notes = $9,
			tracking_number = $10,
			edited_at = $11,
			edited_by = $12,
			updated_at = $13
		WHERE order_id = $1;`

	tag, err := r.Pool.Exec(ctx, query,
		m.OrderID,
		m.EtsyOrderID,
		m.OrderDate,
		m.Status,
		m.OrderPrice,
		m.OrderCost,
		m.ShippingCost,
		m.AdditionalFees,
		m.Notes,
		m.TrackingNumber,
		m.EditedAt,
		m.EditedBy,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MergeOrderFields only overwrites the columns whose patch field is set.
func (r *PgxOrderRepository) MergeOrderFields(ctx context.Context, orderID string, patch domain.OrderFieldPatch) error {
	updatedAt := time.Now().UTC()
	if patch.EditedAt != nil {
		updatedAt = *patch.EditedAt
	}
	query := `
		UPDATE orders SET
			total_expenses = COALESCE($2, total_expenses),
			profit = COALESCE($3, profit),
			edited_at = COALESCE($4, edited_at),
			updated_at = $5
		WHERE order_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, orderID, patch.TotalExpenses, patch.Profit, patch.EditedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to merge fields into order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE order_id = $1;`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveOrdersBatch inserts all orders in one transaction.
func (r *PgxOrderRepository) SaveOrdersBatch(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertOrders(ctx, tx, orders); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertOrders(ctx context.Context, tx pgx.Tx, orders []domain.Order) error {
	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(insertOrderQuery, insertOrderArgs(mapping.ToModelOrder(o))...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order batch contains an existing id", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to execute order batch", err)
	}
	return nil
}

package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `id, customer_id, customer_name, subtotal, discount, total,
	deposit_paid, deposit_amount, production_status, shipping_status,
	COALESCE(notes, '') as notes, is_cancelled, stock_deducted,
	salesperson_id, COALESCE(salesperson_name, '') as salesperson_name,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.Subtotal, &o.Discount, &o.Total,
		&o.DepositPaid, &o.DepositAmount, &o.ProductionStatus, &o.ShippingStatus,
		&o.Notes, &o.IsCancelled, &o.StockDeducted,
		&o.SalespersonID, &o.SalespersonName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the order and its item snapshots inside the caller's
// transaction, so stock deduction can ride in the same batch.
func (r *OrderRepository) Create(ctx context.Context, tx pgx.Tx, o *models.Order) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO orders(customer_id, customer_name, subtotal, discount, total,
		        deposit_paid, deposit_amount, production_status, shipping_status,
		        notes, is_cancelled, stock_deducted, salesperson_id, salesperson_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13, NULLIF($14, ''))
		 RETURNING id, created_at, updated_at`,
		o.CustomerID, o.CustomerName, o.Subtotal, o.Discount, o.Total,
		o.DepositPaid, o.DepositAmount, o.ProductionStatus, o.ShippingStatus,
		o.Notes, o.IsCancelled, o.StockDeducted, o.SalespersonID, o.SalespersonName,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}
	return r.insertItems(ctx, tx, o.ID, o.Items)
}

// Update rewrites the order row and replaces its item snapshots inside the
// caller's transaction (same batch as stock reconciliation on edit).
func (r *OrderRepository) Update(ctx context.Context, tx pgx.Tx, o *models.Order) error {
	_, err := tx.Exec(ctx,
		`UPDATE orders SET customer_id=$1, customer_name=$2, subtotal=$3, discount=$4, total=$5,
		        deposit_paid=$6, deposit_amount=$7, production_status=$8, shipping_status=$9,
		        notes=NULLIF($10, ''), stock_deducted=$11, updated_at=NOW()
		 WHERE id=$12`,
		o.CustomerID, o.CustomerName, o.Subtotal, o.Discount, o.Total,
		o.DepositPaid, o.DepositAmount, o.ProductionStatus, o.ShippingStatus,
		o.Notes, o.StockDeducted, o.ID)
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return err
	}
	return r.insertItems(ctx, tx, o.ID, o.Items)
}

func (r *OrderRepository) insertItems(ctx context.Context, tx pgx.Tx, orderID int, items []models.OrderItem) error {
	for i, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items(order_id, position, product_id, name, qty, unit_price, materials_cost, line_total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			orderID, i, item.ProductID, item.Name, item.Qty, item.UnitPrice, item.MaterialsCost, item.LineTotal)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id int) (*models.Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT product_id, name, qty, unit_price, materials_cost, line_total
		 FROM order_items WHERE order_id=$1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Qty, &item.UnitPrice, &item.MaterialsCost, &item.LineTotal); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *OrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	return r.listWhere(ctx, ``)
}

// ListBetween returns orders created inside [start, end], cancelled included;
// report aggregation filters cancelled orders itself.
func (r *OrderRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*models.Order, error) {
	return r.listWhere(ctx, `WHERE created_at >= $1 AND created_at <= $2`, start, end)
}

func (r *OrderRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+orderColumns+` FROM orders `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	byID := make(map[int]*models.Order)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	// Single item query grouped in memory instead of one query per order
	itemRows, err := r.DB.Query(ctx,
		`SELECT order_id, product_id, name, qty, unit_price, materials_cost, line_total
		 FROM order_items ORDER BY order_id, position`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int
		var item models.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Name, &item.Qty, &item.UnitPrice, &item.MaterialsCost, &item.LineTotal); err != nil {
			return nil, err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return orders, itemRows.Err()
}

// UpdateStatus writes one status field inside the caller's transaction.
// Field must be a validated column name, never raw client input.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, field, value string, stockDeducted *bool) error {
	if stockDeducted != nil {
		_, err := tx.Exec(ctx,
			`UPDATE orders SET `+field+`=$1, stock_deducted=$2, updated_at=NOW() WHERE id=$3`,
			value, *stockDeducted, id)
		return err
	}
	_, err := tx.Exec(ctx,
		`UPDATE orders SET `+field+`=$1, updated_at=NOW() WHERE id=$2`, value, id)
	return err
}

// MarkCancelled sets the terminal cancelled flag inside the caller's
// transaction, clearing stock_deducted when stock was restored.
func (r *OrderRepository) MarkCancelled(ctx context.Context, tx pgx.Tx, id int, stockDeducted bool) error {
	_, err := tx.Exec(ctx,
		`UPDATE orders SET is_cancelled=TRUE, stock_deducted=$1, updated_at=NOW() WHERE id=$2`,
		stockDeducted, id)
	return err
}

// Delete hard-deletes an order. Stock is deliberately NOT restored here;
// cancel first if the deduction should be rolled back.
func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	return err
}

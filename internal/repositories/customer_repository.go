package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, full_name, address, phone_number, COALESCE(email, '') as email,
	referred_by_id, COALESCE(referred_by_name, '') as referred_by_name, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.FullName, &c.Address, &c.PhoneNumber, &c.Email,
		&c.ReferredByID, &c.ReferredByName, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(full_name, address, phone_number, email, referred_by_id, referred_by_name)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))
		 RETURNING id, created_at, updated_at`,
		c.FullName, c.Address, c.PhoneNumber, c.Email, c.ReferredByID, c.ReferredByName,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=$1`, id)
	return scanCustomer(row)
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE phone_number=$1`, phone)
	return scanCustomer(row)
}

func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET full_name=$1, address=$2, phone_number=$3, email=NULLIF($4, ''),
		        referred_by_id=$5, referred_by_name=NULLIF($6, ''), updated_at=NOW()
		 WHERE id=$7`,
		c.FullName, c.Address, c.PhoneNumber, c.Email, c.ReferredByID, c.ReferredByName, c.ID)
	return err
}

func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	return err
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}

// CountReferredSince counts customers referred by a salesperson after the
// given time. Used for customerCount reward progress.
func (r *CustomerRepository) CountReferredSince(ctx context.Context, salespersonID int, since time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE referred_by_id=$1 AND created_at >= $2`,
		salespersonID, since).Scan(&count)
	return count, err
}

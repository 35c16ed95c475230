package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO products(name, description, price, materials_cost)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.MaterialsCost,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	for i, pm := range p.Materials {
		_, err = tx.Exec(ctx,
			`INSERT INTO product_materials(product_id, position, material_id, material_name, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			p.ID, i, pm.MaterialID, pm.MaterialName, pm.Quantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE products SET name=$1, description=$2, price=$3, materials_cost=$4, updated_at=NOW()
		 WHERE id=$5`,
		p.Name, p.Description, p.Price, p.MaterialsCost, p.ID)
	if err != nil {
		return err
	}

	// Recipe rows are replaced wholesale; order matters for display
	if _, err = tx.Exec(ctx, `DELETE FROM product_materials WHERE product_id=$1`, p.ID); err != nil {
		return err
	}
	for i, pm := range p.Materials {
		_, err = tx.Exec(ctx,
			`INSERT INTO product_materials(product_id, position, material_id, material_name, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			p.ID, i, pm.MaterialID, pm.MaterialName, pm.Quantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') as description, price, materials_cost, created_at, updated_at
		 FROM products WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.MaterialsCost, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT material_id, material_name, quantity
		 FROM product_materials WHERE product_id=$1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pm models.ProductMaterial
		if err := rows.Scan(&pm.MaterialID, &pm.MaterialName, &pm.Quantity); err != nil {
			return nil, err
		}
		p.Materials = append(p.Materials, pm)
	}
	return &p, rows.Err()
}

// List returns all products with their recipes. Recipes are fetched in a
// single query and grouped in memory instead of one query per product.
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(description, '') as description, price, materials_cost, created_at, updated_at
		 FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	byID := make(map[int]*models.Product)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.MaterialsCost, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recipeRows, err := r.DB.Query(ctx,
		`SELECT product_id, material_id, material_name, quantity
		 FROM product_materials ORDER BY product_id, position`)
	if err != nil {
		return nil, err
	}
	defer recipeRows.Close()

	for recipeRows.Next() {
		var productID int
		var pm models.ProductMaterial
		if err := recipeRows.Scan(&productID, &pm.MaterialID, &pm.MaterialName, &pm.Quantity); err != nil {
			return nil, err
		}
		if p, ok := byID[productID]; ok {
			p.Materials = append(p.Materials, pm)
		}
	}
	return products, recipeRows.Err()
}

// Catalog returns all products keyed by id, for recipe lookups during stock
// deduction and report aggregation.
func (r *ProductRepository) Catalog(ctx context.Context) (map[int]*models.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(map[int]*models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return catalog, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	// product_materials rows go with the product (ON DELETE CASCADE)
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

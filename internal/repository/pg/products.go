package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ibeloyar/backoffice/internal/model"
)

const productColumns = `id, state, ref, description`

func scanProduct(row rowScanner) (model.Product, error) {
	var product model.Product
	err := row.Scan(&product.ID, &product.State, &product.Ref, &product.Description)
	return product, err
}

func (r *Repository) ListProducts(ctx context.Context) ([]model.Product, error) {
	result := make([]model.Product, 0)

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		result = result[:0]
		for rows.Next() {
			product, err := scanProduct(rows)
			if err != nil {
				return err
			}
			result = append(result, product)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return result, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var product model.Product

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		var err error
		product, err = scanProduct(db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return product, model.ErrNotFound
	}
	if err != nil {
		return product, fmt.Errorf("get product %s: %w", id, err)
	}

	return product, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product model.Product) error {
	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO products (`+productColumns+`) VALUES ($1, $2, $3, $4)`,
			product.ID,
			product.State,
			product.Ref,
			product.Description,
		)
		return err
	})
	if IsUniqueViolation(err) {
		return model.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product model.Product) error {
	var affected int64

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`UPDATE products SET state = $1, ref = $2, description = $3 WHERE id = $4`,
			product.State,
			product.Ref,
			product.Description,
			product.ID,
		)
		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})
	if IsUniqueViolation(err) {
		return model.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("update product %s: %w", product.ID, err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) (model.Product, error) {
	var product model.Product

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		var err error
		product, err = scanProduct(db.QueryRowContext(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return product, model.ErrNotFound
	}
	if err != nil {
		return product, fmt.Errorf("delete product %s: %w", id, err)
	}

	return product, nil
}

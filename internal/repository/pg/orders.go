package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ibeloyar/backoffice/internal/model"
)

const orderColumns = `id, unit_price, nb_of_days, vat, state, type, customer, comment`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (model.Order, error) {
	var order model.Order
	err := row.Scan(
		&order.ID,
		&order.UnitPrice,
		&order.NbOfDays,
		&order.VAT,
		&order.State,
		&order.Type,
		&order.Customer,
		&order.Comment,
	)
	return order, err
}

func (r *Repository) ListOrders(ctx context.Context) ([]model.Order, error) {
	result := make([]model.Order, 0)

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at, id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		result = result[:0]
		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			result = append(result, order)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return result, nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (model.Order, error) {
	var order model.Order

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		var err error
		order, err = scanOrder(db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return order, model.ErrNotFound
	}
	if err != nil {
		return order, fmt.Errorf("get order %s: %w", id, err)
	}

	return order, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order model.Order) error {
	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.ID,
			order.UnitPrice,
			order.NbOfDays,
			order.VAT,
			order.State,
			order.Type,
			order.Customer,
			order.Comment,
		)
		return err
	})
	if IsUniqueViolation(err) {
		return model.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *Repository) UpdateOrder(ctx context.Context, order model.Order) error {
	var affected int64

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`UPDATE orders SET unit_price = $1, nb_of_days = $2, vat = $3, state = $4, type = $5, customer = $6, comment = $7 WHERE id = $8`,
			order.UnitPrice,
			order.NbOfDays,
			order.VAT,
			order.State,
			order.Type,
			order.Customer,
			order.Comment,
			order.ID,
		)
		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// DeleteOrder возвращает удаленную запись
func (r *Repository) DeleteOrder(ctx context.Context, id string) (model.Order, error) {
	var order model.Order

	err := r.executeWithRetryConnection(ctx, func(db *sql.DB) error {
		var err error
		order, err = scanOrder(db.QueryRowContext(ctx, `DELETE FROM orders WHERE id = $1 RETURNING `+orderColumns, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return order, model.ErrNotFound
	}
	if err != nil {
		return order, fmt.Errorf("delete order %s: %w", id, err)
	}

	return order, nil
}

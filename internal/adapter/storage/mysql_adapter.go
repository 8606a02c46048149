package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
	"github.com/Bateyjosue/e-commerce-platform-backend/internal/port"
)

// ErrForeignUnitOfWork is returned when a unit of work from another store
// implementation is passed in.
var ErrForeignUnitOfWork = errors.New("unit of work does not belong to this store")

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

type sqlUnitOfWork struct {
	tx *sql.Tx
}

func (u *sqlUnitOfWork) Commit() error { return u.tx.Commit() }

func (u *sqlUnitOfWork) Rollback() error { return u.tx.Rollback() }

func (m *MySQLAdapter) Begin(ctx context.Context) (port.UnitOfWork, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &sqlUnitOfWork{tx: tx}, nil
}

func (m *MySQLAdapter) txOf(uow port.UnitOfWork) (*sql.Tx, error) {
	u, ok := uow.(*sqlUnitOfWork)
	if !ok {
		return nil, ErrForeignUnitOfWork
	}
	return u.tx, nil
}

const productColumns = `id, name, price, description, image, category, stock, user_id, updated_by, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.Category,
		&p.Stock, &p.UserID, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) GetProductForUpdate(ctx context.Context, uow port.UnitOfWork, id string) (*domain.Product, error) {
	tx, err := m.txOf(uow)
	if err != nil {
		return nil, err
	}

	// Row lock held until the unit of work commits or aborts.
	row := tx.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE id = ? FOR UPDATE`, id)
	return scanProduct(row)
}

func (m *MySQLAdapter) DecrementStock(ctx context.Context, uow port.UnitOfWork, productID string, quantity int) (bool, error) {
	tx, err := m.txOf(uow)
	if err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?, updated_at = NOW()
		WHERE id = ? AND stock >= ?`,
		quantity, productID, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, uow port.UnitOfWork, order domain.Order) error {
	tx, err := m.txOf(uow)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total_price, status, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.TotalPrice, order.Status, order.Description,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES (?, ?, ?)`,
			order.ID, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

func (m *MySQLAdapter) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, user_id, total_price, status, description, created_at, updated_at
		FROM orders WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[string]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.Description,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemRows, err := m.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.product_id, oi.quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = ?
		ORDER BY oi.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return orders, nil
}

func (m *MySQLAdapter) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price, p.Description, p.Image, p.Category,
		p.Stock, p.UserID, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

func (m *MySQLAdapter) UpdateProduct(ctx context.Context, p domain.Product) (bool, error) {
	result, err := m.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, price = ?, description = ?, image = ?, category = ?,
		    stock = ?, updated_by = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Price, p.Description, p.Image, p.Category,
		p.Stock, p.UpdatedBy, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// RowsAffected is 0 for a no-op update too; only report missing
		// when the row truly is not there.
		existing, err := m.GetProduct(ctx, p.ID)
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	}
	return true, nil
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, id string) (bool, error) {
	result, err := m.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (m *MySQLAdapter) SearchProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	q := query.WithDefaults()

	where, args := searchFilter(q.Search)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := m.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (m *MySQLAdapter) CountProducts(ctx context.Context, search string) (int, error) {
	where, args := searchFilter(search)

	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func searchFilter(search string) (string, []interface{}) {
	if search == "" {
		return "", nil
	}
	pattern := "%" + strings.ToLower(search) + "%"
	return " WHERE LOWER(name) LIKE ?", []interface{}{pattern}
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const selectSales = `
	SELECT s.id, s.product_id, COALESCE(p.name, ''), s.customer_id, s.quantity, s.unit_price,
		s.sale_date, s.customer_name, s.region, s.salesperson, s.profit_margin, s.created_at, s.updated_at
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id`

// SaleRepo implementación de SaleRepository sobre SQLite.
type SaleRepo struct {
	db DBTX
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(db DBTX) *SaleRepo {
	return &SaleRepo{db: db}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sales (product_id, customer_id, quantity, unit_price, sale_date, customer_name,
			region, salesperson, profit_margin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ProductID, nullInt(s.CustomerID), s.Quantity, s.UnitPrice.String(), s.SaleDate.UTC().Format(dateLayout),
		s.CustomerName, s.Region, s.Salesperson, s.ProfitMargin.String(),
		formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	s.ID = id
	if err := r.db.QueryRowContext(ctx, `SELECT name FROM products WHERE id = ?`, s.ProductID).Scan(&s.ProductName); err != nil {
		return fmt.Errorf("insert sale: nombre de producto: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.db.QueryRowContext(ctx, selectSales+` WHERE s.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sales SET product_id = ?, customer_id = ?, quantity = ?, unit_price = ?, sale_date = ?,
			customer_name = ?, region = ?, salesperson = ?, profit_margin = ?, updated_at = ?
		WHERE id = ?`,
		s.ProductID, nullInt(s.CustomerID), s.Quantity, s.UnitPrice.String(), s.SaleDate.UTC().Format(dateLayout),
		s.CustomerName, s.Region, s.Salesperson, s.ProfitMargin.String(), formatTime(s.UpdatedAt), s.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update sale: %w", err)
	}
	return mustAffect(res, "update sale")
}

func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return querySales(ctx, r.db, selectSales+` ORDER BY s.id LIMIT ? OFFSET ?`, limit, offset)
}

func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return mustAffect(res, "delete sale")
}

func querySales(ctx context.Context, db DBTX, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer func() { _ = rows.Close() }()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row scanner) (*entity.Sale, error) {
	var (
		s                    entity.Sale
		customerID           sql.NullInt64
		saleDate             string
		createdAt, updatedAt string
	)
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &customerID, &s.Quantity, &s.UnitPrice,
		&saleDate, &s.CustomerName, &s.Region, &s.Salesperson, &s.ProfitMargin, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.CustomerID = intPtr(customerID)
	if s.SaleDate, err = time.Parse(dateLayout, saleDate); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// selectSales une con products para resolver product_name (vacío si el producto no existe).
const selectSales = `
	SELECT s.id, s.product_id, COALESCE(p.name, ''), s.customer_id, s.quantity, s.unit_price,
		s.sale_date, s.customer_name, s.region, s.salesperson, s.profit_margin, s.created_at, s.updated_at
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta, asigna su ID y resuelve ProductName.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (product_id, customer_id, quantity, unit_price, sale_date, customer_name,
			region, salesperson, profit_margin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, COALESCE((SELECT name FROM products WHERE id = $1), '')`
	err := r.q.QueryRow(ctx, query,
		sale.ProductID, sale.CustomerID, sale.Quantity, sale.UnitPrice, sale.SaleDate,
		sale.CustomerName, sale.Region, sale.Salesperson, sale.ProfitMargin,
		sale.CreatedAt, sale.UpdatedAt,
	).Scan(&sale.ID, &sale.ProductName)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, selectSales+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update actualiza una venta.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	query := `
		UPDATE sales SET product_id = $2, customer_id = $3, quantity = $4, unit_price = $5,
			sale_date = $6, customer_name = $7, region = $8, salesperson = $9, profit_margin = $10,
			updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		sale.ID, sale.ProductID, sale.CustomerID, sale.Quantity, sale.UnitPrice, sale.SaleDate,
		sale.CustomerName, sale.Region, sale.Salesperson, sale.ProfitMargin, sale.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas por id ascendente con paginación.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return querySales(ctx, r.q, selectSales+` ORDER BY s.id LIMIT $1 OFFSET $2`, limit, offset)
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func querySales(ctx context.Context, q Querier, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
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

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.CustomerID, &s.Quantity, &s.UnitPrice,
		&s.SaleDate, &s.CustomerName, &s.Region, &s.Salesperson, &s.ProfitMargin, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.SaleDate = s.SaleDate.UTC()
	return &s, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, COALESCE(email, ''), phone, company, address, city, state, country,
	postal_code, customer_type, status, credit_limit, notes, created_by, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository sobre SQLite. Email vacío se guarda como NULL.
type CustomerRepo struct {
	db DBTX
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(db DBTX) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (name, email, phone, company, address, city, state, country, postal_code,
			customer_type, status, credit_limit, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, nullString(c.Email), c.Phone, c.Company, c.Address, c.City, c.State, c.Country,
		c.PostalCode, c.CustomerType, c.Status, c.CreditLimit.String(), c.Notes, nullInt(c.CreatedBy),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario creador inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	c.ID = id
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer func() { _ = rows.Close() }()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name = ?, email = ?, phone = ?, company = ?, address = ?, city = ?, state = ?,
			country = ?, postal_code = ?, customer_type = ?, status = ?, credit_limit = ?, notes = ?,
			updated_at = ?
		WHERE id = ?`,
		c.Name, nullString(c.Email), c.Phone, c.Company, c.Address, c.City, c.State, c.Country,
		c.PostalCode, c.CustomerType, c.Status, c.CreditLimit.String(), c.Notes, formatTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return mustAffect(res, "update customer")
}

// Delete elimina el cliente; sales.customer_id pasa a NULL.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return mustAffect(res, "delete customer")
}

func scanCustomer(row scanner) (*entity.Customer, error) {
	var (
		c                    entity.Customer
		createdBy            sql.NullInt64
		createdAt, updatedAt string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.City, &c.State,
		&c.Country, &c.PostalCode, &c.CustomerType, &c.Status, &c.CreditLimit, &c.Notes, &createdBy,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.CreatedBy = intPtr(createdBy)
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

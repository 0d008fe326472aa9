package memory

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// CustomerRepository implementa repository.CustomerRepository en memoria.
// El email, si se informa, es único.
type CustomerRepository struct {
	s *Store
}

func (r *CustomerRepository) emailTaken(email string, exceptID int64) bool {
	if email == "" {
		return false
	}
	for id, c := range r.s.customers {
		if id != exceptID && c.Email == email {
			return true
		}
	}
	return false
}

func (r *CustomerRepository) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(customer.Email, 0) {
		return domain.ErrDuplicate
	}
	r.s.nextCustomerID++
	customer.ID = r.s.nextCustomerID
	r.s.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

func (r *CustomerRepository) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := page(r.s.customers, limit, offset)
	out := make([]*entity.Customer, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneCustomer(r.s.customers[id]))
	}
	return out, nil
}

func (r *CustomerRepository) Update(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(customer.Email, customer.ID) {
		return domain.ErrDuplicate
	}
	r.s.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

// Delete elimina el cliente; sus ventas conservan customer_name y pierden customer_id.
func (r *CustomerRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	for _, sa := range r.s.sales {
		if sa.CustomerID != nil && *sa.CustomerID == id {
			sa.CustomerID = nil
		}
	}
	return nil
}

// Package memory implementa los repositorios sobre mapas en memoria.
//
// Todos los repositorios de un Store comparten un único sync.RWMutex: las lecturas
// concurrentes no se bloquean entre sí y cada escritura es atómica respecto al resto.
// Los valores se copian al entrar y al salir para que nadie mute el estado compartido.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	users     map[int64]*entity.User
	products  map[int64]*entity.Product
	sales     map[int64]*entity.Sale
	customers map[int64]*entity.Customer

	nextUserID     int64
	nextProductID  int64
	nextSaleID     int64
	nextCustomerID int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]*entity.User),
		products:  make(map[int64]*entity.Product),
		sales:     make(map[int64]*entity.Sale),
		customers: make(map[int64]*entity.Customer),
	}
}

// Repositories agrupa los repositorios de este almacén.
func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Users:     &UserRepository{s: s},
		Products:  &ProductRepository{s: s},
		Sales:     &SaleRepository{s: s},
		Customers: &CustomerRepository{s: s},
		Analytics: &AnalyticsRepository{s: s},
		Name:      "memory",
		Close:     func() {},
	}
}

// page aplica offset/limit sobre ids ordenados ascendentemente.
func page[T any](m map[int64]T, limit, offset int) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Permissions = append([]entity.Capability(nil), u.Permissions...)
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneCustomer(cu *entity.Customer) *entity.Customer {
	c := *cu
	if cu.CreatedBy != nil {
		id := *cu.CreatedBy
		c.CreatedBy = &id
	}
	return &c
}

// cloneSale copia la venta y resuelve ProductName con el catálogo actual. Requiere s.mu tomado.
func (s *Store) cloneSale(sa *entity.Sale) *entity.Sale {
	c := *sa
	if sa.CustomerID != nil {
		id := *sa.CustomerID
		c.CustomerID = &id
	}
	c.ProductName = ""
	if p, ok := s.products[sa.ProductID]; ok {
		c.ProductName = p.Name
	}
	return &c
}

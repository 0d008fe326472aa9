package repository

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// AnalyticsRepository consultas de lectura para el cálculo de KPIs.
// Las implementaciones son read-only y devuelven las colecciones completas, sin paginar
// ni filtrar: la agregación siempre se hace sobre todo el histórico.
type AnalyticsRepository interface {
	// AllSales devuelve todas las ventas con ProductName resuelto.
	AllSales(ctx context.Context) ([]*entity.Sale, error)

	// AllProducts devuelve todo el catálogo.
	AllProducts(ctx context.Context) ([]*entity.Product, error)
}

// Store agrupa los repositorios de un backend de datos concreto
// (memory, postgres o sqlite). Close libera conexiones si las hay.
type Store struct {
	Users     UserRepository
	Products  ProductRepository
	Sales     SaleRepository
	Customers CustomerRepository
	Analytics AnalyticsRepository
	Name      string
	Close     func()
}

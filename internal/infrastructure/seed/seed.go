// Package seed carga el conjunto de datos de ejemplo (YAML) en cualquier backend de datos.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

//go:embed sample_data.yaml
var sampleData []byte

// Dataset contenido del archivo de datos de ejemplo.
type Dataset struct {
	Users     []UserSeed     `yaml:"users"`
	Products  []ProductSeed  `yaml:"products"`
	Customers []CustomerSeed `yaml:"customers"`
	Sales     []SaleSeed     `yaml:"sales"`
}

type UserSeed struct {
	Email       string   `yaml:"email"`
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	Password    string   `yaml:"password"`
	Permissions []string `yaml:"permissions"`
}

type ProductSeed struct {
	Name          string          `yaml:"name"`
	Category      string          `yaml:"category"`
	UnitPrice     decimal.Decimal `yaml:"unit_price"`
	CostPrice     decimal.Decimal `yaml:"cost_price"`
	StockQuantity int             `yaml:"stock_quantity"`
	Description   string          `yaml:"description"`
}

type CustomerSeed struct {
	Name         string          `yaml:"name"`
	Email        string          `yaml:"email"`
	Company      string          `yaml:"company"`
	City         string          `yaml:"city"`
	Country      string          `yaml:"country"`
	CustomerType string          `yaml:"customer_type"`
	CreditLimit  decimal.Decimal `yaml:"credit_limit"`
}

// SaleSeed referencia el producto por nombre y el cliente por email.
type SaleSeed struct {
	Product     string          `yaml:"product"`
	Customer    string          `yaml:"customer"`
	Quantity    int             `yaml:"quantity"`
	UnitPrice   decimal.Decimal `yaml:"unit_price"`
	SaleDate    string          `yaml:"sale_date"`
	Region      string          `yaml:"region"`
	Salesperson string          `yaml:"salesperson"`
}

// Result resumen de lo insertado.
type Result struct {
	Users     int
	Products  int
	Customers int
	Sales     int
}

// Default devuelve el dataset embebido en el binario.
func Default() (*Dataset, error) {
	return Parse(sampleData)
}

// FromFile lee un dataset YAML desde disco.
func FromFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodifica un dataset YAML.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("seed: yaml inválido: %w", err)
	}
	return &ds, nil
}

// Apply inserta el dataset en store.
//
// Los usuarios cuyo email ya existe se omiten. Productos, clientes y ventas solo se
// cargan si el catálogo está vacío, de modo que ejecutar Apply dos veces no duplica datos.
func Apply(ctx context.Context, store *repository.Store, ds *Dataset, bcryptCost int) (*Result, error) {
	res := &Result{}
	now := time.Now().UTC()

	for _, u := range ds.Users {
		if u.Email == "" || u.Password == "" {
			continue
		}
		email := auth.NormalizeEmail(u.Email)
		existing, err := store.Users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		caps, err := entity.ParseCapabilities(u.Permissions)
		if err != nil {
			return nil, fmt.Errorf("seed: usuario %s: %w", u.Email, err)
		}
		hash, err := auth.HashPassword(u.Password, bcryptCost)
		if err != nil {
			return nil, err
		}
		user := &entity.User{
			Email:        email,
			Name:         u.Name,
			Role:         u.Role,
			Permissions:  caps,
			PasswordHash: hash,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.Users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("seed: usuario %s: %w", u.Email, err)
		}
		res.Users++
	}

	current, err := store.Products.List(ctx, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(current) > 0 {
		return res, nil
	}

	products := make(map[string]*entity.Product, len(ds.Products))
	for _, p := range ds.Products {
		product := &entity.Product{
			Name:          p.Name,
			Category:      p.Category,
			UnitPrice:     p.UnitPrice,
			CostPrice:     p.CostPrice,
			StockQuantity: p.StockQuantity,
			Description:   p.Description,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := store.Products.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("seed: producto %s: %w", p.Name, err)
		}
		products[p.Name] = product
		res.Products++
	}

	customers := make(map[string]*entity.Customer, len(ds.Customers))
	for _, c := range ds.Customers {
		customer := &entity.Customer{
			Name:         c.Name,
			Email:        c.Email,
			Company:      c.Company,
			City:         c.City,
			Country:      c.Country,
			CustomerType: nonEmpty(c.CustomerType, entity.CustomerTypeIndividual),
			Status:       entity.CustomerStatusActive,
			CreditLimit:  c.CreditLimit,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.Customers.Create(ctx, customer); err != nil {
			return nil, fmt.Errorf("seed: cliente %s: %w", c.Email, err)
		}
		customers[c.Email] = customer
		res.Customers++
	}

	for i, s := range ds.Sales {
		product, ok := products[s.Product]
		if !ok {
			return nil, fmt.Errorf("seed: venta %d: producto %q no definido", i+1, s.Product)
		}
		date, err := time.Parse("2006-01-02", s.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("seed: venta %d: fecha %q: %w", i+1, s.SaleDate, err)
		}
		sale := &entity.Sale{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     s.Quantity,
			UnitPrice:    s.UnitPrice,
			SaleDate:     date,
			Region:       s.Region,
			Salesperson:  s.Salesperson,
			ProfitMargin: entity.MarginPercent(s.UnitPrice, product.CostPrice),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if c, ok := customers[s.Customer]; ok {
			id := c.ID
			sale.CustomerID = &id
			sale.CustomerName = c.Name
		}
		if err := store.Sales.Create(ctx, sale); err != nil {
			return nil, fmt.Errorf("seed: venta %d: %w", i+1, err)
		}
		res.Sales++
	}
	return res, nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

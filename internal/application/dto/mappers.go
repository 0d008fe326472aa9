package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-analytics-api/internal/domain/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// NewUserResponse convierte la entidad en salida (sin hash de password).
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: entity.CapabilityStrings(u.Permissions),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewProductResponse convierte el producto; sin financial, costo y margen quedan en null.
func NewProductResponse(p *entity.Product, financial bool) *ProductResponse {
	if p == nil {
		return nil
	}
	out := &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if financial {
		out.CostPrice = decPtr(p.CostPrice)
		out.ProfitMargin = decPtr(p.ProfitMargin())
	}
	return out
}

// NewSaleResponse convierte la venta; total_amount siempre se recalcula.
func NewSaleResponse(s *entity.Sale, financial bool) *SaleResponse {
	if s == nil {
		return nil
	}
	out := &SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		CustomerID:   s.CustomerID,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		TotalAmount:  s.TotalAmount(),
		SaleDate:     s.SaleDate.Format(DateLayout),
		CustomerName: s.CustomerName,
		Region:       s.Region,
		Salesperson:  s.Salesperson,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if financial {
		out.ProfitMargin = decPtr(s.ProfitMargin)
	}
	return out
}

// NewCustomerResponse convierte el cliente.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Company:      c.Company,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		Country:      c.Country,
		PostalCode:   c.PostalCode,
		CustomerType: c.CustomerType,
		Status:       c.Status,
		CreditLimit:  c.CreditLimit,
		Notes:        c.Notes,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// NewKPIResponse convierte un reporte ya redactado (Financials nil = sin acceso).
func NewKPIResponse(r *analytics.Report) *KPIResponse {
	if r == nil {
		return nil
	}
	out := &KPIResponse{
		TotalRevenue:      r.TotalRevenue.Round(2),
		TotalSales:        r.TotalSales,
		TotalProducts:     r.TotalProducts,
		AverageOrderValue: r.AverageOrderValue.Round(2),
		TopSellingProduct: r.TopSellingProduct,
		RevenueGrowth:     r.RevenueGrowth,
	}
	if f := r.Financials; f != nil {
		out.ProfitMargin = decPtr(f.NetProfitMargin)
		out.TotalCOGS = decPtr(f.TotalCOGS.Round(2))
		out.GrossProfit = decPtr(f.GrossProfit.Round(2))
		out.OperatingExpenses = decPtr(f.OperatingExpenses.Round(2))
		out.NetProfit = decPtr(f.NetProfit.Round(2))
		out.GrossProfitMargin = decPtr(f.GrossProfitMargin)
		out.NetProfitMargin = decPtr(f.NetProfitMargin)
	}
	return out
}

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

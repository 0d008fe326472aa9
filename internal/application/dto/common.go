package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Los importes viajan como números JSON (el frontend opera con ellos directamente).
	decimal.MarshalJSONWithoutQuotes = true
}

// Límites de paginación de los listados.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PageRequest paginación para listados (?skip=&limit=).
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=1,max=1000"`
}

// DefaultPage aplica valores por defecto y recorta a los límites permitidos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

package dto

import "github.com/go-playground/validator/v10"

// validate instancia compartida del validador para los DTOs de entrada.
var validate = validator.New()

// PageRequest paginación para listados (estilo page/limit de la API pública).
type PageRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Limit vienen en cero.
func (p *PageRequest) DefaultPage() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
}

// Validate valida la página ya con defaults aplicados. Rechaza page/limit <= 0
// o limit > 100.
func (p *PageRequest) Validate() error {
	return validate.Struct(p)
}

// Offset traduce page/limit a offset SQL.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas (formato que ya consumen los
// clientes del panel: total, página, totalPages, has*).
type PageResponse struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"total_pages"`
	HasPrevPage bool  `json:"has_prev_page"`
	HasNextPage bool  `json:"has_next_page"`
}

// NewPageResponse calcula los metadatos a partir del total y la página pedida.
func NewPageResponse(total int64, page, limit int) PageResponse {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageResponse{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

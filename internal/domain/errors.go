package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada uno mapea a un código
// HTTP estable y distinto en la capa de interfaces.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrAmbiguous         = errors.New("selector ambiguo: más de un producto coincide")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidStock      = errors.New("el stock resultante sería negativo")
	ErrConflict          = errors.New("conflicto de concurrencia, reintentable")
	ErrUnavailable       = errors.New("almacenamiento no disponible")
)

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a códigos de estado.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autenticado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores específicos; envuelven a los de arriba para que errors.Is clasifique la respuesta.
var (
	ErrNoBillableEntries      = fmt.Errorf("%w: ninguna entrada de tiempo facturable", ErrInvalidInput)
	ErrMissingHourlyRate      = fmt.Errorf("%w: colaborador sin tarifa horaria", ErrInvalidInput)
	ErrInvalidDueDate         = fmt.Errorf("%w: fecha de vencimiento inválida", ErrInvalidInput)
	ErrInvalidDate            = fmt.Errorf("%w: fecha inválida", ErrInvalidInput)
	ErrInvalidTaxRate         = fmt.Errorf("%w: tasa de impuesto inválida", ErrInvalidInput)
	ErrInvalidStatus          = fmt.Errorf("%w: estado no reconocido", ErrInvalidInput)
	ErrInvalidRole            = fmt.Errorf("%w: rol no reconocido", ErrInvalidInput)
	ErrReferenceTaken         = fmt.Errorf("%w: referencia de factura ya existe", ErrDuplicate)
	ErrEntriesAlreadyInvoiced = fmt.Errorf("%w: entradas de tiempo ya facturadas", ErrConflict)
	ErrDocumentNotActive      = fmt.Errorf("%w: el dossier no está activo", ErrConflict)
	ErrDocumentHasInvoices    = fmt.Errorf("%w: el dossier tiene facturas", ErrConflict)
	ErrClientInUse            = fmt.Errorf("%w: el cliente tiene dossiers o facturas", ErrConflict)
	ErrTooManyDecimals        = fmt.Errorf("%w: se admiten como máximo dos decimales", ErrInvalidInput)
)

// NotFound devuelve ErrNotFound con el nombre del recurso para el mensaje HTTP.
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// Package adjustment implementa el buffer de ajustes de inventario pendientes:
// líneas de ajuste por tienda, acumuladas en memoria antes de enviarse como un
// único lote al Submission Gateway.
//
// El buffer es estado local de una sesión de usuario y se opera desde un solo
// goroutine (flujo de eventos UI/CLI); no usa locks. La única frontera
// asíncrona es el envío del lote, con a lo sumo un envío en vuelo por tienda
// (precondición del caller, ver application/adjustment.SubmitUseCase).
package adjustment

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
)

// Direction sentido de un ajuste: aumenta o disminuye la existencia.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Valid reporta si la dirección pertenece al conjunto permitido.
func (d Direction) Valid() bool {
	return d == DirectionIncrease || d == DirectionDecrease
}

// Errores de validación del buffer. Nunca mutan el ledger.
var (
	ErrInvalidDirection = errors.New("adjustment: dirección inválida")
	ErrInvalidQuantity  = errors.New("adjustment: la cantidad debe ser un entero positivo")
)

// Entry es una línea pendiente de ajuste: identifica el producto (y
// opcionalmente la variante/unidad serializada), el sentido del cambio, la
// magnitud y los metadatos. Es un objeto de valor: una vez enviada con éxito,
// la línea se descarta junto con el ledger.
type Entry struct {
	ID        string // único dentro del proceso
	ProductID int64
	StockID   *int64 // nil = el producto como un todo
	Direction Direction
	Quantity  int64 // magnitud; el signo lo lleva Direction
	Reason    string
	Notes     string
}

// NewEntry construye una línea con ID local único, validando dirección y cantidad.
func NewEntry(productID int64, stockID *int64, dir Direction, qty int64, reason, notes string) (Entry, error) {
	if !dir.Valid() {
		return Entry{}, ErrInvalidDirection
	}
	if qty <= 0 {
		return Entry{}, ErrInvalidQuantity
	}
	return Entry{
		ID:        uuid.New().String(),
		ProductID: productID,
		StockID:   stockID,
		Direction: dir,
		Quantity:  qty,
		Reason:    reason,
		Notes:     notes,
	}, nil
}

// Signed devuelve la cantidad con signo según la dirección.
func (e Entry) Signed() int64 {
	if e.Direction == DirectionDecrease {
		return -e.Quantity
	}
	return e.Quantity
}

// pairKey identidad (ProductID, StockID) usada para la unicidad dentro de un
// ledger. La forma sin variante ("10") nunca colisiona con una con variante
// ("10:5").
func (e Entry) pairKey() string {
	if e.StockID == nil {
		return strconv.FormatInt(e.ProductID, 10)
	}
	return strconv.FormatInt(e.ProductID, 10) + ":" + strconv.FormatInt(*e.StockID, 10)
}

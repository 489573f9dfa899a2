// Package adjustment (application) orquesta el ciclo de vida del buffer de
// ajustes del lado cliente: armado del payload, envío del lote al gateway y
// limpieza del ledger tras el éxito.
package adjustment

import (
	"context"
	"fmt"

	domadj "github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
)

// SubmissionGateway puerto hacia el servicio remoto que aplica lotes de
// ajustes de forma atómica. Devuelve el id del lote aplicado, o un
// *SubmissionError cuando el servidor rechaza el lote.
type SubmissionGateway interface {
	Submit(ctx context.Context, storeID int64, records []domadj.Record) (string, error)
}

// SubmissionError error estructurado devuelto por el Submission Gateway
// (ej. stock insuficiente, producto inexistente). El ledger queda intacto
// para que el usuario corrija y reenvíe; ningún registro fue aplicado.
type SubmissionError struct {
	Field   string
	Message string
}

func (e *SubmissionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("envío rechazado: %s", e.Message)
	}
	return fmt.Sprintf("envío rechazado (%s): %s", e.Field, e.Message)
}

package adjustment

import (
	"context"

	"github.com/andgatetech/pos-inventory-api/internal/domain"
	domadj "github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
)

// SubmitUseCase envía el lote pendiente de una tienda al Submission Gateway.
//
// Precondición del caller: a lo sumo un envío en vuelo por tienda (la UI/CLI
// deshabilita el reenvío mientras hay una petición pendiente); el caso de uso
// no lo refuerza porque el buffer es estado de un solo goroutine.
type SubmitUseCase struct {
	buffer  *domadj.Buffer
	gateway SubmissionGateway
}

// NewSubmitUseCase construye el caso de uso sobre un buffer ya poblado.
func NewSubmitUseCase(buffer *domadj.Buffer, gateway SubmissionGateway) *SubmitUseCase {
	return &SubmitUseCase{buffer: buffer, gateway: gateway}
}

// Submit arma el payload de la tienda y lo envía como un único lote.
// Éxito: el servidor aplicó todo atómicamente y el ledger de esa tienda se
// vacía; devuelve el id del lote. Fallo: el ledger queda exactamente como
// estaba (sin limpieza parcial ni reintento por línea) y el error del gateway
// se propaga al caller; el reintento es una acción manual del usuario.
func (uc *SubmitUseCase) Submit(ctx context.Context, storeID int64) (string, error) {
	records := uc.buffer.SubmissionPayload(storeID)
	if len(records) == 0 {
		return "", domain.ErrEmptyBatch
	}
	batchID, err := uc.gateway.Submit(ctx, storeID, records)
	if err != nil {
		return "", err
	}
	uc.buffer.ClearStore(storeID)
	return batchID, nil
}

// Totals agregados pendientes de la tienda, para mostrar antes del envío.
func (uc *SubmitUseCase) Totals(storeID int64) domadj.Totals {
	return uc.buffer.Totals(storeID)
}

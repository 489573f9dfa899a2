package adjustment

import "github.com/google/uuid"

// Record es el formato de cable de una línea de ajuste, tal como lo espera el
// Submission Gateway: un registro por línea del ledger.
type Record struct {
	ProductID      int64  `json:"product_id"`
	StockID        *int64 `json:"stock_id,omitempty"`
	AdjustmentType string `json:"adjustment_type"` // increase | decrease
	Quantity       int64  `json:"quantity"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes,omitempty"`
}

// Record proyecta la línea al formato de cable.
func (e Entry) Record() Record {
	return Record{
		ProductID:      e.ProductID,
		StockID:        e.StockID,
		AdjustmentType: string(e.Direction),
		Quantity:       e.Quantity,
		Reason:         e.Reason,
		Notes:          e.Notes,
	}
}

// EntryFromRecord reconstruye una línea desde el formato de cable, validando
// dirección y cantidad. Lo usa el lado servidor para verificar cada registro
// recibido, y preserva producto, variante, dirección, cantidad, motivo y notas
// (ida y vuelta sin pérdida respecto de Record()).
func EntryFromRecord(r Record) (Entry, error) {
	dir := Direction(r.AdjustmentType)
	if !dir.Valid() {
		return Entry{}, ErrInvalidDirection
	}
	if r.Quantity <= 0 {
		return Entry{}, ErrInvalidQuantity
	}
	return Entry{
		ID:        uuid.New().String(),
		ProductID: r.ProductID,
		StockID:   r.StockID,
		Direction: dir,
		Quantity:  r.Quantity,
		Reason:    r.Reason,
		Notes:     r.Notes,
	}, nil
}

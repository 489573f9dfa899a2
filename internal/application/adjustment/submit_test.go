package adjustment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appadj "github.com/andgatetech/pos-inventory-api/internal/application/adjustment"
	"github.com/andgatetech/pos-inventory-api/internal/domain"
	domadj "github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gateway falso en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	batchID  string
	err      error
	calls    int
	lastSent []domadj.Record
}

func (g *fakeGateway) Submit(_ context.Context, _ int64, records []domadj.Record) (string, error) {
	g.calls++
	g.lastSent = records
	if g.err != nil {
		return "", g.err
	}
	return g.batchID, nil
}

func stage(t *testing.T, b *domadj.Buffer, storeID, productID int64, dir domadj.Direction, qty int64) domadj.Entry {
	t.Helper()
	e, err := domadj.NewEntry(productID, nil, dir, qty, "correction", "")
	require.NoError(t, err)
	_, err = b.AddEntry(storeID, e)
	require.NoError(t, err)
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit: éxito limpia la tienda; fallo la deja intacta
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ExitoLimpiaSoloLaTienda(t *testing.T) {
	buffer := domadj.NewBuffer()
	stage(t, buffer, 1, 10, domadj.DirectionIncrease, 5)
	stage(t, buffer, 2, 20, domadj.DirectionDecrease, 3) // otra tienda, no debe tocarse

	gw := &fakeGateway{batchID: "batch-123"}
	uc := appadj.NewSubmitUseCase(buffer, gw)

	batchID, err := uc.Submit(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "batch-123", batchID)
	assert.Equal(t, 1, gw.calls)
	require.Len(t, gw.lastSent, 1, "se envía un registro por línea del ledger")

	assert.Equal(t, domadj.Totals{}, uc.Totals(1), "tras el éxito la tienda queda en cero")
	assert.Equal(t, 1, buffer.Totals(2).TotalItems, "la tienda 2 no se ve afectada")
}

func TestSubmit_FalloDejaElLedgerIntacto(t *testing.T) {
	buffer := domadj.NewBuffer()
	stage(t, buffer, 1, 10, domadj.DirectionDecrease, 50)

	subErr := &appadj.SubmissionError{Field: "quantity", Message: "stock insuficiente"}
	gw := &fakeGateway{err: subErr}
	uc := appadj.NewSubmitUseCase(buffer, gw)

	_, err := uc.Submit(context.Background(), 1)
	require.Error(t, err)

	var se *appadj.SubmissionError
	require.True(t, errors.As(err, &se), "el error estructurado del gateway llega al caller")
	assert.Equal(t, "quantity", se.Field)

	// Sin limpieza parcial: el usuario corrige y reenvía
	assert.Equal(t, 1, buffer.Totals(1).TotalItems)
	assert.Equal(t, int64(50), buffer.Entries(1)[0].Quantity)
}

func TestSubmit_LoteVacioNoLlamaAlGateway(t *testing.T) {
	buffer := domadj.NewBuffer()
	gw := &fakeGateway{batchID: "nunca"}
	uc := appadj.NewSubmitUseCase(buffer, gw)

	_, err := uc.Submit(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	assert.Zero(t, gw.calls, "no se envían lotes vacíos")
}

func TestSubmit_ReintentoTrasCorreccion(t *testing.T) {
	buffer := domadj.NewBuffer()
	e := stage(t, buffer, 1, 10, domadj.DirectionDecrease, 50)

	gw := &fakeGateway{err: &appadj.SubmissionError{Field: "quantity", Message: "stock insuficiente"}}
	uc := appadj.NewSubmitUseCase(buffer, gw)

	_, err := uc.Submit(context.Background(), 1)
	require.Error(t, err)

	// El usuario corrige la cantidad y reenvía manualmente
	require.NoError(t, buffer.UpdateQuantity(1, e.ID, 5))
	gw.err = nil
	gw.batchID = "batch-ok"

	batchID, err := uc.Submit(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "batch-ok", batchID)
	assert.Equal(t, int64(5), gw.lastSent[0].Quantity, "viaja la cantidad corregida")
	assert.Equal(t, domadj.Totals{}, buffer.Totals(1))
}

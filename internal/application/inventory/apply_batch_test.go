package inventory_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgatetech/pos-inventory-api/internal/application/inventory"
	"github.com/andgatetech/pos-inventory-api/internal/domain"
	"github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (repos + tx runner con rollback real sobre copias)
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	levels    map[string]decimal.Decimal // store:product:stock -> qty
	movements []*entity.StockMovement
	batches   []*entity.AdjustmentBatch
}

func levelKey(storeID, productID int64, stockID *int64) string {
	k := strconv.FormatInt(storeID, 10) + ":" + strconv.FormatInt(productID, 10)
	if stockID != nil {
		k += ":" + strconv.FormatInt(*stockID, 10)
	}
	return k
}

func (s *memState) clone() *memState {
	c := &memState{levels: make(map[string]decimal.Decimal, len(s.levels))}
	for k, v := range s.levels {
		c.levels[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	c.batches = append(c.batches, s.batches...)
	return c
}

type memTxRepo struct {
	state *memState
}

func (m *memTxRepo) Get(storeID, productID int64, stockID *int64) (*entity.StockLevel, error) {
	return m.GetForUpdate(storeID, productID, stockID)
}

func (m *memTxRepo) GetForUpdate(storeID, productID int64, stockID *int64) (*entity.StockLevel, error) {
	qty, ok := m.state.levels[levelKey(storeID, productID, stockID)]
	if !ok {
		qty = decimal.Zero
	}
	return &entity.StockLevel{StoreID: storeID, ProductID: productID, StockID: stockID, Quantity: qty}, nil
}

func (m *memTxRepo) Upsert(level *entity.StockLevel) error {
	m.state.levels[levelKey(level.StoreID, level.ProductID, level.StockID)] = level.Quantity
	return nil
}

func (m *memTxRepo) ListByStore(int64, int, int) ([]*entity.StockLevel, error) { return nil, nil }

type memMovRepo struct{ state *memState }

func (m *memMovRepo) Create(mov *entity.StockMovement) error {
	m.state.movements = append(m.state.movements, mov)
	return nil
}
func (m *memMovRepo) ListByBatch(batchID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mv := range m.state.movements {
		if mv.BatchID == batchID {
			out = append(out, mv)
		}
	}
	return out, nil
}
func (m *memMovRepo) ListByStore(int64, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return m.state.movements, nil
}

type memBatchRepo struct{ state *memState }

func (m *memBatchRepo) Create(b *entity.AdjustmentBatch) error {
	m.state.batches = append(m.state.batches, b)
	return nil
}
func (m *memBatchRepo) GetByID(id string) (*entity.AdjustmentBatch, error) {
	for _, b := range m.state.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}
func (m *memBatchRepo) ListByStore(int64, int, int) ([]*entity.AdjustmentBatch, error) {
	return m.state.batches, nil
}

type fakeStoreRepo struct{ stores map[int64]*entity.Store }

func (r *fakeStoreRepo) Create(*entity.Store) error          { return nil }
func (r *fakeStoreRepo) GetByID(id int64) (*entity.Store, error) { return r.stores[id], nil }
func (r *fakeStoreRepo) Update(*entity.Store) error          { return nil }
func (r *fakeStoreRepo) List(int, int) ([]*entity.Store, error) { return nil, nil }
func (r *fakeStoreRepo) Delete(int64) error                  { return nil }

type fakeProductRepo struct {
	products map[int64]*entity.Product
	variants map[int64]*entity.ProductVariant
}

func (r *fakeProductRepo) Create(*entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(int64) error { return nil }
func (r *fakeProductRepo) GetVariant(id int64) (*entity.ProductVariant, error) {
	return r.variants[id], nil
}
func (r *fakeProductRepo) ListVariants(int64) ([]*entity.ProductVariant, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

type applyFixture struct {
	uc    *inventory.ApplyBatchUseCase
	state *memState
}

func newApplyFixture(t *testing.T) *applyFixture {
	t.Helper()
	state := &memState{levels: make(map[string]decimal.Decimal)}
	runner := &txRunnerWithRepos{state: state}
	stores := &fakeStoreRepo{stores: map[int64]*entity.Store{
		1: {ID: 1, Name: "Tienda Centro"},
		2: {ID: 2, Name: "Tienda Norte"},
	}}
	products := &fakeProductRepo{
		products: map[int64]*entity.Product{
			10: {ID: 10, SKU: "SKU-10", Name: "Café 500g"},
			11: {ID: 11, SKU: "SKU-11", Name: "Azúcar 1kg"},
		},
		variants: map[int64]*entity.ProductVariant{
			4: {ID: 4, ProductID: 10, Label: "Lote A"},
		},
	}
	reasons := adjustment.NewVocabulary([]string{"damaged", "expired", "lost", "found", "returned", "correction", "other"})
	return &applyFixture{
		uc:    inventory.NewApplyBatchUseCase(runner, stores, products, reasons),
		state: state,
	}
}

// txRunnerWithRepos versión del runner que entrega los tres repos sobre el
// mismo estado de trabajo, con semántica commit/rollback.
type txRunnerWithRepos struct{ state *memState }

func (r *txRunnerWithRepos) Run(_ context.Context, fn func(
	repository.StockRepository,
	repository.StockMovementRepository,
	repository.AdjustmentBatchRepository,
) error) error {
	work := r.state.clone()
	err := fn(&memTxRepo{state: work}, &memMovRepo{state: work}, &memBatchRepo{state: work})
	if err != nil {
		return err
	}
	*r.state = *work
	return nil
}

func (f *applyFixture) seedStock(storeID, productID int64, stockID *int64, qty int64) {
	f.state.levels[levelKey(storeID, productID, stockID)] = decimal.NewFromInt(qty)
}

func (f *applyFixture) stock(storeID, productID int64, stockID *int64) decimal.Decimal {
	return f.state.levels[levelKey(storeID, productID, stockID)]
}

func rec(productID int64, stockID *int64, typ string, qty int64, reason string) adjustment.Record {
	return adjustment.Record{ProductID: productID, StockID: stockID, AdjustmentType: typ, Quantity: qty, Reason: reason}
}

func int64ptr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación exitosa
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_LoteMixtoActualizaExistencias(t *testing.T) {
	f := newApplyFixture(t)
	f.seedStock(1, 11, nil, 10)

	batch, err := f.uc.Apply(context.Background(), 1, []adjustment.Record{
		rec(10, nil, "increase", 5, "found"),
		rec(11, nil, "decrease", 3, "damaged"),
	})
	require.NoError(t, err)
	require.NotNil(t, batch)

	assert.Equal(t, 2, batch.TotalItems)
	assert.Equal(t, int64(5), batch.TotalIncrease)
	assert.Equal(t, int64(3), batch.TotalDecrease)
	assert.True(t, f.stock(1, 10, nil).Equal(decimal.NewFromInt(5)), "el aumento parte de existencia cero")
	assert.True(t, f.stock(1, 11, nil).Equal(decimal.NewFromInt(7)), "10 - 3 = 7")
	assert.Len(t, f.state.movements, 2, "un movimiento por línea")
	assert.Len(t, f.state.batches, 1)
}

func TestApply_VarianteAjustaSuPropiaFila(t *testing.T) {
	f := newApplyFixture(t)
	f.seedStock(1, 10, nil, 20)

	_, err := f.uc.Apply(context.Background(), 1, []adjustment.Record{
		rec(10, int64ptr(4), "increase", 2, "returned"),
	})
	require.NoError(t, err)

	assert.True(t, f.stock(1, 10, int64ptr(4)).Equal(decimal.NewFromInt(2)))
	assert.True(t, f.stock(1, 10, nil).Equal(decimal.NewFromInt(20)), "la fila sin variante no se toca")
}

// ──────────────────────────────────────────────────────────────────────────────
// Todo-o-nada
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newApplyFixture(t)
	f.seedStock(1, 10, nil, 100)
	f.seedStock(1, 11, nil, 1)

	_, err := f.uc.Apply(context.Background(), 1, []adjustment.Record{
		rec(10, nil, "increase", 5, "found"), // válida, pero debe revertirse
		rec(11, nil, "decrease", 2, "lost"),  // deja la existencia en negativo
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var be *inventory.BatchError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "records[1].quantity", be.Field)

	// Nada se aplicó: ni la línea válida ni la cabecera del lote
	assert.True(t, f.stock(1, 10, nil).Equal(decimal.NewFromInt(100)))
	assert.True(t, f.stock(1, 11, nil).Equal(decimal.NewFromInt(1)))
	assert.Empty(t, f.state.movements)
	assert.Empty(t, f.state.batches)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación previa (sin tocar la transacción)
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ValidacionesDeLote(t *testing.T) {
	f := newApplyFixture(t)
	f.seedStock(1, 10, nil, 50)
	ctx := context.Background()

	cases := []struct {
		name     string
		storeID  int64
		records  []adjustment.Record
		sentinel error
		field    string
	}{
		{"lote vacío", 1, nil, domain.ErrEmptyBatch, "records"},
		{"tienda inexistente", 99, []adjustment.Record{rec(10, nil, "increase", 1, "")}, domain.ErrNotFound, "store_id"},
		{"producto inexistente", 1, []adjustment.Record{rec(999, nil, "increase", 1, "")}, domain.ErrNotFound, "records[0].product_id"},
		{"variante ajena al producto", 1, []adjustment.Record{rec(11, int64ptr(4), "increase", 1, "")}, domain.ErrNotFound, "records[0].stock_id"},
		{"dirección inválida", 1, []adjustment.Record{rec(10, nil, "sideways", 1, "")}, domain.ErrInvalidInput, "records[0].adjustment_type"},
		{"cantidad cero", 1, []adjustment.Record{rec(10, nil, "increase", 0, "")}, domain.ErrInvalidInput, "records[0].quantity"},
		{"motivo fuera de vocabulario", 1, []adjustment.Record{rec(10, nil, "increase", 1, "shrinkage")}, domain.ErrInvalidInput, "records[0].reason"},
		{"par duplicado en el lote", 1, []adjustment.Record{
			rec(10, nil, "increase", 1, ""),
			rec(10, nil, "decrease", 2, ""),
		}, domain.ErrDuplicate, "records[1].product_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Apply(ctx, tc.storeID, tc.records)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			var be *inventory.BatchError
			require.True(t, errors.As(err, &be), "todo rechazo viaja como BatchError")
			assert.Equal(t, tc.field, be.Field)

			assert.Empty(t, f.state.movements, "un lote rechazado no aplica nada")
			assert.True(t, f.stock(1, 10, nil).Equal(decimal.NewFromInt(50)))
		})
	}
}

// El motivo vacío es aceptable (sin seleccionar).
func TestApply_MotivoVacioEsValido(t *testing.T) {
	f := newApplyFixture(t)
	_, err := f.uc.Apply(context.Background(), 1, []adjustment.Record{
		rec(10, nil, "increase", 1, ""),
	})
	require.NoError(t, err)
}

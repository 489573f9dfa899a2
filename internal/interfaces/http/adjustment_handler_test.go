package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgatetech/pos-inventory-api/internal/application/dto"
	"github.com/andgatetech/pos-inventory-api/internal/application/inventory"
	"github.com/andgatetech/pos-inventory-api/internal/application/usecase"
	"github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
	apphttp "github.com/andgatetech/pos-inventory-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para armar la app de test
// ──────────────────────────────────────────────────────────────────────────────

type memRepos struct {
	levels    map[string]decimal.Decimal
	movements []*entity.StockMovement
	batches   []*entity.AdjustmentBatch
}

func key(storeID, productID int64, stockID *int64) string {
	k := strconv.FormatInt(storeID, 10) + ":" + strconv.FormatInt(productID, 10)
	if stockID != nil {
		k += ":" + strconv.FormatInt(*stockID, 10)
	}
	return k
}

func (m *memRepos) Get(storeID, productID int64, stockID *int64) (*entity.StockLevel, error) {
	return m.GetForUpdate(storeID, productID, stockID)
}
func (m *memRepos) GetForUpdate(storeID, productID int64, stockID *int64) (*entity.StockLevel, error) {
	qty, ok := m.levels[key(storeID, productID, stockID)]
	if !ok {
		qty = decimal.Zero
	}
	return &entity.StockLevel{StoreID: storeID, ProductID: productID, StockID: stockID, Quantity: qty}, nil
}
func (m *memRepos) Upsert(l *entity.StockLevel) error {
	m.levels[key(l.StoreID, l.ProductID, l.StockID)] = l.Quantity
	return nil
}
func (m *memRepos) ListByStore(int64, int, int) ([]*entity.StockLevel, error) { return nil, nil }

type memMov struct{ parent *memRepos }

func (m memMov) Create(mov *entity.StockMovement) error {
	m.parent.movements = append(m.parent.movements, mov)
	return nil
}
func (m memMov) ListByBatch(string) ([]*entity.StockMovement, error) { return m.parent.movements, nil }
func (m memMov) ListByStore(int64, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return m.parent.movements, nil
}

type fakeStores struct{}

func (fakeStores) Create(*entity.Store) error { return nil }
func (fakeStores) GetByID(id int64) (*entity.Store, error) {
	if id == 1 {
		return &entity.Store{ID: 1, Name: "Tienda Centro"}, nil
	}
	return nil, nil
}
func (fakeStores) Update(*entity.Store) error { return nil }
func (fakeStores) List(int, int) ([]*entity.Store, error) { return nil, nil }
func (fakeStores) Delete(int64) error { return nil }

type fakeProducts struct{}

func (fakeProducts) Create(*entity.Product) error { return nil }
func (fakeProducts) GetByID(id int64) (*entity.Product, error) {
	if id == 10 {
		return &entity.Product{ID: 10, SKU: "SKU-10", Name: "Café 500g"}, nil
	}
	return nil, nil
}
func (fakeProducts) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (fakeProducts) Update(*entity.Product) error { return nil }
func (fakeProducts) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (fakeProducts) Delete(int64) error { return nil }
func (fakeProducts) GetVariant(int64) (*entity.ProductVariant, error) { return nil, nil }
func (fakeProducts) ListVariants(int64) ([]*entity.ProductVariant, error) { return nil, nil }

type passthroughTx struct{ repos *memRepos }

func (r passthroughTx) Run(_ context.Context, fn func(
	repository.StockRepository,
	repository.StockMovementRepository,
	repository.AdjustmentBatchRepository,
) error) error {
	return fn(r.repos, memMov{parent: r.repos}, memBatch{parent: r.repos})
}

type memBatch struct{ parent *memRepos }

func (m memBatch) Create(b *entity.AdjustmentBatch) error {
	m.parent.batches = append(m.parent.batches, b)
	return nil
}
func (m memBatch) GetByID(string) (*entity.AdjustmentBatch, error) { return nil, nil }
func (m memBatch) ListByStore(int64, int, int) ([]*entity.AdjustmentBatch, error) {
	return m.parent.batches, nil
}

func buildTestApp(t *testing.T) (*fiber.App, *memRepos) {
	t.Helper()
	repos := &memRepos{levels: make(map[string]decimal.Decimal)}
	reasons := adjustment.NewVocabulary([]string{"damaged", "found"})
	applyUC := inventory.NewApplyBatchUseCase(passthroughTx{repos: repos}, fakeStores{}, fakeProducts{}, reasons)
	stockUC := usecase.NewStockUseCase(repos, memMov{parent: repos}, memBatch{parent: repos})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ApplyBatch: applyUC,
		StockUC:    stockUC,
		StoreUC:    usecase.NewStoreUseCase(fakeStores{}),
		ProductUC:  usecase.NewProductUseCase(fakeProducts{}),
	})
	return app, repos
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, dto.SubmitAdjustmentsResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.SubmitAdjustmentsResponse
	require.NoError(t, json.Unmarshal(data, &out))
	return resp.StatusCode, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Contrato de cable del Submission Gateway
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ExitoDevuelveOkYBatchID(t *testing.T) {
	app, repos := buildTestApp(t)

	status, out := postJSON(t, app, "/api/stores/1/adjustments", dto.SubmitAdjustmentsRequest{
		Records: []dto.AdjustmentRecordRequest{
			{ProductID: 10, AdjustmentType: "increase", Quantity: 5, Reason: "found"},
		},
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, out.OK)
	assert.NotEmpty(t, out.BatchID)
	assert.Nil(t, out.Error)
	assert.Len(t, repos.movements, 1)
}

func TestSubmit_StockInsuficienteDevuelveErrorEstructurado(t *testing.T) {
	app, repos := buildTestApp(t)

	status, out := postJSON(t, app, "/api/stores/1/adjustments", dto.SubmitAdjustmentsRequest{
		Records: []dto.AdjustmentRecordRequest{
			{ProductID: 10, AdjustmentType: "decrease", Quantity: 4, Reason: "damaged"},
		},
	})

	assert.Equal(t, fiber.StatusConflict, status)
	assert.False(t, out.OK)
	require.NotNil(t, out.Error)
	assert.Equal(t, "records[0].quantity", out.Error.Field)
	assert.Empty(t, repos.movements, "ningún registro aplicado")
}

func TestSubmit_TiendaInexistente(t *testing.T) {
	app, _ := buildTestApp(t)

	status, out := postJSON(t, app, "/api/stores/99/adjustments", dto.SubmitAdjustmentsRequest{
		Records: []dto.AdjustmentRecordRequest{
			{ProductID: 10, AdjustmentType: "increase", Quantity: 1},
		},
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, out.Error)
	assert.Equal(t, "store_id", out.Error.Field)
}

func TestSubmit_LoteVacioEsRechazado(t *testing.T) {
	app, _ := buildTestApp(t)

	status, out := postJSON(t, app, "/api/stores/1/adjustments", dto.SubmitAdjustmentsRequest{})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, out.OK)
	require.NotNil(t, out.Error)
}

func TestSubmit_DireccionInvalida(t *testing.T) {
	app, _ := buildTestApp(t)

	status, out := postJSON(t, app, "/api/stores/1/adjustments", dto.SubmitAdjustmentsRequest{
		Records: []dto.AdjustmentRecordRequest{
			{ProductID: 10, AdjustmentType: "sideways", Quantity: 1},
		},
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, out.OK)
}

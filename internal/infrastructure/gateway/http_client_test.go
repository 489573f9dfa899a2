package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appadj "github.com/andgatetech/pos-inventory-api/internal/application/adjustment"
	domadj "github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
	"github.com/andgatetech/pos-inventory-api/internal/infrastructure/gateway"
	"github.com/andgatetech/pos-inventory-api/pkg/config"
)

func newClient(t *testing.T, handler http.HandlerFunc) *gateway.HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.NewHTTPClient(config.GatewayConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
}

func TestSubmit_ExitoDevuelveBatchID(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Records []domadj.Record `json:"records"`
	}
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true,"batch_id":"b-123"}`))
	})

	batchID, err := client.Submit(context.Background(), 7, []domadj.Record{
		{ProductID: 10, AdjustmentType: "increase", Quantity: 5, Reason: "found"},
	})
	require.NoError(t, err)
	assert.Equal(t, "b-123", batchID)
	assert.Equal(t, "/api/stores/7/adjustments", gotPath)
	require.Len(t, gotBody.Records, 1)
	assert.Equal(t, int64(10), gotBody.Records[0].ProductID)
	assert.Equal(t, "increase", gotBody.Records[0].AdjustmentType)
}

func TestSubmit_RechazoEstructurado(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ok":false,"error":{"field":"records[0].quantity","message":"stock insuficiente"}}`))
	})

	_, err := client.Submit(context.Background(), 1, []domadj.Record{
		{ProductID: 10, AdjustmentType: "decrease", Quantity: 99},
	})
	require.Error(t, err)

	var se *appadj.SubmissionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "records[0].quantity", se.Field)
	assert.Equal(t, "stock insuficiente", se.Message)
}

func TestSubmit_RespuestaNoInterpretable(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502 Bad Gateway</html>"))
	})

	_, err := client.Submit(context.Background(), 1, []domadj.Record{
		{ProductID: 10, AdjustmentType: "increase", Quantity: 1},
	})
	require.Error(t, err)

	var se *appadj.SubmissionError
	assert.False(t, errors.As(err, &se), "un fallo de transporte no es un rechazo estructurado")
}

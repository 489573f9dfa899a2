// Package gateway implementa el cliente HTTP del Submission Gateway: el lado
// cliente que entrega lotes de ajustes al servicio de inventario.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appadj "github.com/andgatetech/pos-inventory-api/internal/application/adjustment"
	"github.com/andgatetech/pos-inventory-api/internal/application/dto"
	domadj "github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
	"github.com/andgatetech/pos-inventory-api/pkg/config"
)

var _ appadj.SubmissionGateway = (*HTTPClient)(nil)

// HTTPClient implementa SubmissionGateway contra el endpoint REST
// POST {base}/api/stores/{id}/adjustments. Usa net/http de la stdlib.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient construye el cliente con la configuración del gateway.
func NewHTTPClient(cfg config.GatewayConfig) *HTTPClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit entrega el lote completo y devuelve el id del lote aplicado.
// Un rechazo estructurado del servidor ({ok:false, error:{field,message}})
// se devuelve como *adjustment.SubmissionError; fallos de red o respuestas
// no interpretables se devuelven como error plano.
func (c *HTTPClient) Submit(ctx context.Context, storeID int64, records []domadj.Record) (string, error) {
	body, err := json.Marshal(submitRequest{Records: records})
	if err != nil {
		return "", fmt.Errorf("serializar lote: %w", err)
	}

	url := fmt.Sprintf("%s/api/stores/%d/adjustments", c.baseURL, storeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("enviar lote al gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("leer respuesta del gateway: %w", err)
	}

	var out dto.SubmitAdjustmentsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("respuesta no interpretable del gateway (HTTP %d): %w", resp.StatusCode, err)
	}

	if out.OK {
		return out.BatchID, nil
	}
	if out.Error != nil {
		return "", &appadj.SubmissionError{Field: out.Error.Field, Message: out.Error.Message}
	}
	return "", fmt.Errorf("el gateway rechazó el lote sin detalle (HTTP %d)", resp.StatusCode)
}

// submitRequest es el body del POST. Los Record del dominio ya llevan los
// nombres JSON del contrato de cable.
type submitRequest struct {
	Records []domadj.Record `json:"records"`
}

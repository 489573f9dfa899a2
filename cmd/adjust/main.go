// adjust envía un lote de ajustes de inventario al Submission Gateway.
//
// Lee un archivo JSON con las líneas a ajustar, las acumula en el buffer
// local (misma validación e idempotencia que la UI del POS), muestra los
// totales y entrega el lote completo. Un rechazo del servidor deja el
// archivo como fuente para corregir y reintentar.
//
// Uso: go run ./cmd/adjust -store 1 -file ajustes.json [-dry-run]
//
// Formato del archivo:
//
//	[
//	  {"product_id": 10, "adjustment_type": "increase", "quantity": 5, "reason": "found"},
//	  {"product_id": 11, "stock_id": 4, "adjustment_type": "decrease", "quantity": 2, "reason": "damaged"}
//	]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	appadj "github.com/andgatetech/pos-inventory-api/internal/application/adjustment"
	domadj "github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
	"github.com/andgatetech/pos-inventory-api/internal/infrastructure/gateway"
	"github.com/andgatetech/pos-inventory-api/pkg/config"
)

func main() {
	storeID := flag.Int64("store", 0, "ID de la tienda")
	file := flag.String("file", "", "archivo JSON con las líneas del lote")
	dryRun := flag.Bool("dry-run", false, "validar y mostrar totales sin enviar")
	flag.Parse()

	if *storeID <= 0 || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer archivo: %v\n", err)
		os.Exit(1)
	}
	var records []domadj.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		fmt.Fprintf(os.Stderr, "interpretar JSON: %v\n", err)
		os.Exit(1)
	}

	// Pasar por el buffer aplica la misma validación y la idempotencia por
	// par (producto, variante) que tendría la UI.
	buffer := domadj.NewBuffer()
	for i, r := range records {
		entry, err := domadj.EntryFromRecord(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: %v\n", i+1, err)
			os.Exit(1)
		}
		inserted, err := buffer.AddEntry(*storeID, entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: %v\n", i+1, err)
			os.Exit(1)
		}
		if !inserted {
			fmt.Fprintf(os.Stderr, "línea %d: par producto/variante repetido, ignorada\n", i+1)
		}
	}

	totals := buffer.Totals(*storeID)
	fmt.Printf("Lote para la tienda %d:\n", *storeID)
	fmt.Printf("  líneas:        %d\n", totals.TotalItems)
	fmt.Printf("  aumentos:      %d\n", totals.TotalIncrease)
	fmt.Printf("  disminuciones: %d\n", totals.TotalDecrease)
	fmt.Printf("  cambio neto:   %+d\n", totals.NetChange)

	if *dryRun {
		fmt.Println("dry-run: no se envió nada")
		return
	}

	client := gateway.NewHTTPClient(cfg.Gateway)
	submitUC := appadj.NewSubmitUseCase(buffer, client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	batchID, err := submitUC.Submit(ctx, *storeID)
	if err != nil {
		var se *appadj.SubmissionError
		if errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "lote rechazado [%s]: %s\n", se.Field, se.Message)
			fmt.Fprintln(os.Stderr, "ningún registro fue aplicado; corrija el archivo y reintente")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "enviar lote: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("lote aplicado: %s\n", batchID)
}

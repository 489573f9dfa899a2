package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo POS.
// Cost es el costo promedio del producto; el stock se lleva por tienda en StockLevel.
type Product struct {
	ID        int64
	SKU       string // código único de catálogo
	Name      string
	Unit      string // unidad de medida (unidad, kg, litro, ...)
	Price     decimal.Decimal // precio de venta
	Cost      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductVariant identifica una variante o unidad serializada de un producto.
// Es el referente del stock_id en los registros de ajuste; un ajuste sin
// variante aplica al producto como un todo.
type ProductVariant struct {
	ID        int64
	ProductID int64
	SerialNo  string
	Label     string
	CreatedAt time.Time
}

package entity

import "time"

// Store representa una tienda o punto de venta con inventario propio (multi-tienda).
type Store struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

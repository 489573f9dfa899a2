package repository

import "github.com/andgatetech/pos-inventory-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id int64) error
	// GetVariant resuelve una variante/unidad serializada (el stock_id de los ajustes).
	GetVariant(id int64) (*entity.ProductVariant, error)
	ListVariants(productID int64) ([]*entity.ProductVariant, error)
}

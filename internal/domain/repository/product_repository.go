package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// UpsertByCode crea o actualiza el producto por su código (clave natural).
	UpsertByCode(product *entity.Product) (*entity.Product, error)
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetByIDs resuelve varios productos de una vez (hidratación del rollup de stock).
	GetByIDs(ids []string) (map[string]*entity.Product, error)
}

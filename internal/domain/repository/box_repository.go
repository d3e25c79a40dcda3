package repository

import (
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// StockRow una fila del rollup de existencias por instalación: conteo por
// (producto, lote, vencimiento, estado). ProductCode/ProductName se hidratan
// en una segunda pasada, no por join fila a fila.
type StockRow struct {
	ProductID   string
	ProductCode string
	ProductName string
	BatchNo     string
	ExpiryDate  string // YYYY-MM-DD
	Status      string
	Count       int
}

// BoxRepository define el puerto de persistencia para Box (DIP).
// Las mutaciones de estado solo ocurren dentro de la transacción del motor
// de transferencias (repos atados a la tx vía TxRunner).
type BoxRepository interface {
	CreateBatch(boxes []*entity.Box) error
	GetByUID(boxUID string) (*entity.Box, error)
	// GetByUIDs resuelve todas las cajas de un lote en una sola consulta.
	GetByUIDs(boxUIDs []string) ([]*entity.Box, error)
	// GetByUIDsForUpdate resuelve y bloquea (SELECT FOR UPDATE) las filas
	// del lote para que una operación concurrente no intercale.
	GetByUIDsForUpdate(boxUIDs []string) ([]*entity.Box, error)
	// UpdateStatus actualiza estado y ubicación actual de varias cajas.
	UpdateStatus(boxIDs []string, status string, currentFacilityID *string) error
	// StockByFacility agrupa cajas cuya ubicación actual es la instalación.
	StockByFacility(facilityID string) ([]StockRow, error)
	// DeleteByOrder purga las cajas de una orden (utilidad administrativa).
	DeleteByOrder(orderID string) (int, error)
}

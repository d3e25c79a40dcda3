package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// BoxEventRepository define el puerto del libro de eventos (append-only).
// Nada actualiza ni borra eventos salvo la purga administrativa por orden.
type BoxEventRepository interface {
	Append(event *entity.BoxEvent) error
	AppendBatch(events []*entity.BoxEvent) error
	// LatestByType devuelve el evento más reciente del tipo para la caja,
	// ordenado por seq descendente. nil si no existe.
	LatestByType(boxID, eventType string) (*entity.BoxEvent, error)
	// LatestByTypeForBoxes resuelve el último evento del tipo para varias
	// cajas en una sola consulta (validación de destino en recepciones masivas).
	LatestByTypeForBoxes(boxIDs []string, eventType string) (map[string]*entity.BoxEvent, error)
	// ListByBox devuelve los últimos limit eventos de la caja, más recientes primero.
	ListByBox(boxID string, limit int) ([]*entity.BoxEvent, error)
	// DeleteByOrder purga los eventos de las cajas de una orden.
	DeleteByOrder(orderID string) (int, error)
}

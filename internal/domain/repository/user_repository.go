package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// GetByIDs resuelve varios usuarios de una vez (hidratación del historial).
	GetByIDs(ids []string) (map[string]*entity.User, error)
}

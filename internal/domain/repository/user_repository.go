package repository

import "github.com/tu-usuario/planta-pos/internal/domain/entity"

// UserRepository define el puerto de usuarios (solo lo que el login necesita).
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}

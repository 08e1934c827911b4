package entity

import "time"

// User representa un usuario autenticable. La gestión de usuarios vive fuera
// de este núcleo; aquí solo se consume identidad + rol.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

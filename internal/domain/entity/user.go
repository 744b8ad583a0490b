package entity

import "time"

// Roles válidos para User.
const (
	RoleFarmManager = "farm_manager"
	RoleEmployee    = "employee"
)

// Estados de la cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa una cuenta de la granja. Solo puede existir un farm manager.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // farm_manager, employee
	ImageURL     string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si el rol es uno de los soportados.
func IsValidRole(role string) bool {
	return role == RoleFarmManager || role == RoleEmployee
}

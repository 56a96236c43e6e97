package entity

import "time"

// Roles válidos para User.
const (
	RoleAdministrador = "Administrador"
	RoleAnalista      = "Analista"
	RoleGerente       = "Gerente"
	RoleCorredor      = "Corredor"
)

// Estados de User.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministrador, RoleAnalista, RoleGerente, RoleCorredor:
		return true
	}
	return false
}

// HasAccess decide si un rol puede ejecutar una operación restringida a requiredRoles.
// El Administrador tiene acceso total; un rol vacío nunca tiene acceso.
func HasAccess(role string, requiredRoles ...string) bool {
	if role == "" {
		return false
	}
	if role == RoleAdministrador {
		return true
	}
	for _, r := range requiredRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // Administrador, Analista, Gerente, Corredor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

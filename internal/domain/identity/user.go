package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// Role distinguishes customers from suppliers
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleSupplier
}

// User is a read model of the external identity store. Registration,
// authentication and password management live outside this system; the core
// only reads identity and shop affiliation.
type User struct {
	shared.BaseEntity
	Email string `gorm:"type:varchar(254);not null;uniqueIndex"`
	Name  string `gorm:"type:varchar(100);not null"`
	Role  Role   `gorm:"type:varchar(20);not null;default:'customer'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsSupplier returns true for supplier accounts
func (u *User) IsSupplier() bool {
	return u.Role == RoleSupplier
}

// UserRepository defines read access to the identity store
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

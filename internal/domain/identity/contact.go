package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// Contact is a delivery address owned by a user. An order references a
// contact at creation time and never mutates it afterwards.
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(50);not null"`
	Street    string    `gorm:"type:varchar(100);not null"`
	House     string    `gorm:"type:varchar(15)"`
	Structure string    `gorm:"type:varchar(15)"`
	Building  string    `gorm:"type:varchar(15)"`
	Apartment string    `gorm:"type:varchar(15)"`
	Phone     string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new delivery contact for a user
func NewContact(userID uuid.UUID, city, street, phone string) (*Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "User ID cannot be empty")
	}
	if city == "" {
		return nil, shared.NewValidationError("city", "City cannot be empty")
	}
	if street == "" {
		return nil, shared.NewValidationError("street", "Street cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewValidationError("phone", "Phone cannot be empty")
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       city,
		Street:     street,
		Phone:      phone,
	}, nil
}

// Update overwrites the mutable address fields
func (c *Contact) Update(city, street, house, structure, building, apartment, phone string) error {
	if city == "" {
		return shared.NewValidationError("city", "City cannot be empty")
	}
	if street == "" {
		return shared.NewValidationError("street", "Street cannot be empty")
	}
	if phone == "" {
		return shared.NewValidationError("phone", "Phone cannot be empty")
	}

	c.City = city
	c.Street = street
	c.House = house
	c.Structure = structure
	c.Building = building
	c.Apartment = apartment
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy returns true if the contact belongs to the given user
func (c *Contact) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID == userID
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByUser finds all contacts of a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// DeleteForUser deletes the user's contacts matching ids and returns the
	// number removed; ids owned by other users are ignored
	DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}

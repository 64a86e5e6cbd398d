package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/identity"
	"github.com/procurehub/backend/internal/domain/shared"
)

// ContactService handles a user's delivery addresses. Orders reference a
// contact at creation time and keep that reference even if the contact is
// later edited or deleted.
type ContactService struct {
	contactRepo identity.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo identity.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// List returns the user's contacts
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ContactResponseFromDomain(&contacts[i]))
	}
	return responses, nil
}

// Create adds a new contact for the user
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := identity.NewContact(userID, req.City, req.Street, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := contact.Update(req.City, req.Street, req.House, req.Structure, req.Building, req.Apartment, req.Phone); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	resp := ContactResponseFromDomain(contact)
	return &resp, nil
}

// Update edits one of the user's contacts
func (s *ContactService) Update(ctx context.Context, userID, contactID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !contact.IsOwnedBy(userID) {
		return nil, shared.NewAuthorizationError("Contact belongs to another user")
	}

	if err := contact.Update(req.City, req.Street, req.House, req.Structure, req.Building, req.Apartment, req.Phone); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	resp := ContactResponseFromDomain(contact)
	return &resp, nil
}

// Delete removes a batch of the user's contacts. Ids owned by other users
// are ignored rather than failing the batch.
func (s *ContactService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, shared.NewValidationError("items", "At least one contact id is required")
	}
	return s.contactRepo.DeleteForUser(ctx, userID, ids)
}

package contacts

import (
	"context"

	"github.com/baechuer/contactbook/internal/domain"
)

// ContactRepo is the persistence port for contact records. GetByID
// loads regardless of owner; the service performs the ownership check
// itself so a missing contact and a foreign-owned contact produce the
// same outcome for the caller.
type ContactRepo interface {
	Create(ctx context.Context, c domain.Contact) (domain.Contact, error)
	GetByID(ctx context.Context, id string) (domain.Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error)
	Update(ctx context.Context, c domain.Contact) (domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

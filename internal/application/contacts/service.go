package contacts

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/contactbook/internal/domain"
)

// Service implements ownership-scoped contact CRUD. Every read or
// mutation of an existing contact goes through authorize first: fetch
// by id, report absence as not-found, report an owner mismatch as the
// same not-found, and only then touch the record. The mutation is
// never applied before the ownership check.
type Service struct {
	repo ContactRepo
}

func NewService(repo ContactRepo) *Service {
	return &Service{repo: repo}
}

// authorize fetches the contact and enforces that actorID owns it.
func (s *Service) authorize(ctx context.Context, actorID, contactID string) (domain.Contact, error) {
	c, err := s.repo.GetByID(ctx, contactID)
	if err != nil {
		return domain.Contact{}, err
	}
	if c.OwnerID != actorID {
		return domain.Contact{}, domain.ErrContactNotFound()
	}
	return c, nil
}

type CreateCmd struct {
	Name     string
	Email    string
	Phone    string
	Favorite bool
}

func (s *Service) Create(ctx context.Context, actorID string, cmd CreateCmd) (domain.Contact, error) {
	if cmd.Name == "" {
		return domain.Contact{}, domain.ErrMissingField("name")
	}
	c := domain.Contact{
		ID:       uuid.NewString(),
		Name:     cmd.Name,
		Email:    cmd.Email,
		Phone:    cmd.Phone,
		Favorite: cmd.Favorite,
		OwnerID:  actorID,
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) List(ctx context.Context, actorID string) ([]domain.Contact, error) {
	return s.repo.ListByOwner(ctx, actorID)
}

func (s *Service) Get(ctx context.Context, actorID, contactID string) (domain.Contact, error) {
	return s.authorize(ctx, actorID, contactID)
}

type UpdateCmd struct {
	Name     *string
	Email    *string
	Phone    *string
	Favorite *bool
}

func (cmd UpdateCmd) empty() bool {
	return cmd.Name == nil && cmd.Email == nil && cmd.Phone == nil && cmd.Favorite == nil
}

func (s *Service) Update(ctx context.Context, actorID, contactID string, cmd UpdateCmd) (domain.Contact, error) {
	if cmd.empty() {
		return domain.Contact{}, domain.ErrEmptyBody()
	}

	c, err := s.authorize(ctx, actorID, contactID)
	if err != nil {
		return domain.Contact{}, err
	}

	if cmd.Name != nil {
		c.Name = *cmd.Name
	}
	if cmd.Email != nil {
		c.Email = *cmd.Email
	}
	if cmd.Phone != nil {
		c.Phone = *cmd.Phone
	}
	if cmd.Favorite != nil {
		c.Favorite = *cmd.Favorite
	}

	return s.repo.Update(ctx, c)
}

func (s *Service) SetFavorite(ctx context.Context, actorID, contactID string, favorite bool) (domain.Contact, error) {
	c, err := s.authorize(ctx, actorID, contactID)
	if err != nil {
		return domain.Contact{}, err
	}
	c.Favorite = favorite
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, actorID, contactID string) error {
	if _, err := s.authorize(ctx, actorID, contactID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, contactID)
}

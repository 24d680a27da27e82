package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/baechuer/contactbook/internal/domain"
)

func contactRows(cs ...domain.Contact) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "favorite", "owner_id"})
	for _, c := range cs {
		rows.AddRow(c.ID, c.Name, c.Email, c.Phone, c.Favorite, c.OwnerID)
	}
	return rows
}

func sampleContact() domain.Contact {
	return domain.Contact{
		ID:      "c1",
		Name:    "alice",
		Email:   "alice@x.com",
		Phone:   "123",
		OwnerID: "u1",
	}
}

func TestContactRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)
	c := sampleContact()

	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs(c.ID, c.Name, c.Email, c.Phone, c.Favorite, c.OwnerID).
		WillReturnRows(contactRows(c))

	got, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "c1" || got.OwnerID != "u1" {
		t.Fatalf("unexpected contact %+v", got)
	}
}

func TestContactRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM contacts`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !domain.Is(err, "contact_not_found") {
		t.Fatalf("expected contact_not_found, got %v", err)
	}
}

func TestContactRepo_ListByOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)

	a := sampleContact()
	b := sampleContact()
	b.ID, b.Name = "c2", "bob"

	mock.ExpectQuery(`(?s)SELECT .+ FROM contacts\s+WHERE owner_id = \$1`).
		WithArgs("u1").
		WillReturnRows(contactRows(a, b))

	cs, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cs) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(cs))
	}
}

func TestContactRepo_ListByOwner_EmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM contacts\s+WHERE owner_id = \$1`).
		WithArgs("u1").
		WillReturnRows(contactRows())

	cs, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if cs == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestContactRepo_Update_DoesNotTouchOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)
	c := sampleContact()
	c.Phone = "999"

	// five placeholders only: owner_id stays out of the SET list
	mock.ExpectQuery(`UPDATE contacts\s+SET name = \$2, email = \$3, phone = \$4, favorite = \$5\s+WHERE id = \$1`).
		WithArgs(c.ID, c.Name, c.Email, c.Phone, c.Favorite).
		WillReturnRows(contactRows(c))

	got, err := repo.Update(context.Background(), c)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Phone != "999" {
		t.Fatalf("unexpected contact %+v", got)
	}
}

func TestContactRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)

	mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestContactRepo_Delete_Missing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContactRepo(db)

	mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !domain.Is(err, "contact_not_found") {
		t.Fatalf("expected contact_not_found, got %v", err)
	}
}

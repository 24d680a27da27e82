package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/contactbook/internal/domain"
)

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

const contactColumns = `id, name, email, phone, favorite, owner_id`

func scanContact(row rowScanner) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.OwnerID)
	return c, err
}

func (r *ContactRepo) Create(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	const q = `
INSERT INTO contacts (id, name, email, phone, favorite, owner_id)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + contactColumns + `;
`
	created, err := scanContact(r.db.QueryRowContext(ctx, q,
		c.ID, c.Name, c.Email, c.Phone, c.Favorite, c.OwnerID,
	))
	if err != nil {
		return domain.Contact{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (domain.Contact, error) {
	const q = `
SELECT ` + contactColumns + `
FROM contacts
WHERE id = $1
LIMIT 1;
`
	c, err := scanContact(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Contact{}, domain.ErrContactNotFound()
		}
		return domain.Contact{}, domain.ErrDBUnavailable(err)
	}
	return c, nil
}

func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	const q = `
SELECT ` + contactColumns + `
FROM contacts
WHERE owner_id = $1
ORDER BY name;
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// Update never touches owner_id: ownership is immutable after creation.
func (r *ContactRepo) Update(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	const q = `
UPDATE contacts
SET name = $2, email = $3, phone = $4, favorite = $5
WHERE id = $1
RETURNING ` + contactColumns + `;
`
	updated, err := scanContact(r.db.QueryRowContext(ctx, q,
		c.ID, c.Name, c.Email, c.Phone, c.Favorite,
	))
	if err != nil {
		if isNoRows(err) {
			return domain.Contact{}, domain.ErrContactNotFound()
		}
		return domain.Contact{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM contacts WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrContactNotFound()
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackfield/crmd/internal/contact"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const contactColumns = `
	id, tenant_id, name, email, company, title, avatar, phone, address, created_at, updated_at
`

func scanContact(s scanner) (*contact.Contact, error) {
	var c contact.Contact

	var email, company, title, avatar, phone, address sql.NullString

	if err := s.Scan(
		&c.ID, &c.TenantID, &c.Name, &email, &company, &title, &avatar, &phone, &address,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Company = company.String
	c.Title = title.String
	c.Avatar = avatar.String
	c.Phone = phone.String
	c.Address = address.String

	return &c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (tenant_id, name, email, company, title, avatar, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.TenantID, c.Name, c.Email, c.Company, c.Title, c.Avatar, c.Phone, c.Address,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}

	return nil
}

func (s *Store) GetContact(ctx context.Context, tenantID, id string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	c, err := scanContact(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contact.ErrNotFound
		}

		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return c, nil
}

func (s *Store) FindByEmail(ctx context.Context, tenantID, email string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE tenant_id = $1 AND LOWER(email) = LOWER($2) AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT 1`

	c, err := scanContact(s.db.QueryRowContext(ctx, query, tenantID, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contact.ErrNotFound
		}

		return nil, fmt.Errorf("finding contact by email: %w", err)
	}

	return c, nil
}

func (s *Store) ListContacts(ctx context.Context, tenantID string) ([]*contact.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*contact.Contact

	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (s *Store) UpdateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, email = $2, company = $3, title = $4, avatar = $5, phone = $6, address = $7, updated_at = NOW()
		WHERE tenant_id = $8 AND id = $9 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Company, c.Title, c.Avatar, c.Phone, c.Address,
		c.TenantID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	return nil
}

func (s *Store) DeleteContact(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE contacts
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}

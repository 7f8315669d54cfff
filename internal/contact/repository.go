package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/estate-office/internal/db"
)

// Repository provides CRUD operations for contacts.
type Repository struct {
	db *db.DB
}

// NewRepository creates a contact repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{db: d}
}

const selectColumns = `contact_id, name, surname, father_name, document, telephone, email,
	country, city, postal_code, street, placement_num, notes`

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (*Contact, error) {
	var c Contact
	err := s.Scan(
		&c.ID, &c.Name, &c.Surname, &c.FatherName, &c.Document, &c.Telephone, &c.Email,
		&c.Country, &c.City, &c.PostalCode, &c.Street, &c.PlacementNum, &c.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all contacts ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*Contact, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM contact ORDER BY contact_id ASC")
}

// GetByID returns a contact by its ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Contact, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM contact WHERE contact_id = ?", id)

	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying contact %d: %w", id, err)
	}

	return c, nil
}

// ByIDs returns the contacts with the given IDs keyed by ID. Missing IDs
// are simply absent from the map.
func (r *Repository) ByIDs(ctx context.Context, ids []int64) (map[int64]*Contact, error) {
	found := make(map[int64]*Contact, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	err := db.InBatches(ids, func(batch []int64) error {
		query := fmt.Sprintf("SELECT %s FROM contact WHERE contact_id IN (%s)", selectColumns, db.Placeholders(len(batch)))
		contacts, err := r.query(ctx, query, db.IDArgs(batch)...)
		if err != nil {
			return err
		}
		for _, c := range contacts {
			found[c.ID] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) (contacts []*Contact, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	return contacts, nil
}

// Create inserts a contact and returns its generated ID.
func (r *Repository) Create(ctx context.Context, in *Input) (int64, error) {
	id, err := r.db.Insert(ctx, "contact", "contact_id",
		[]string{"name", "surname", "father_name", "document", "telephone", "email",
			"country", "city", "postal_code", "street", "placement_num", "notes"},
		[]any{in.Name, in.Surname, in.FatherName, in.Document, in.Telephone, in.Email,
			in.Country, in.City, in.PostalCode, in.Street, in.PlacementNum, in.Notes},
	)
	if err != nil {
		return 0, fmt.Errorf("creating contact: %w", err)
	}
	return id, nil
}

// Update applies the fields present in p. It reports false when the
// contact does not exist or nothing changed.
func (r *Repository) Update(ctx context.Context, id int64, p *Patch) (bool, error) {
	c := p.changes()
	changed, err := r.db.Update(ctx, "contact", "contact_id", id, c.Columns(), c.Values())
	if err != nil {
		return false, fmt.Errorf("updating contact %d: %w", id, err)
	}
	return changed, nil
}

// Delete removes a contact by ID. Agents and clients referencing it keep
// their rows with a NULL contact.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, "contact", "contact_id", id)
	if err != nil {
		return false, fmt.Errorf("deleting contact %d: %w", id, err)
	}
	return deleted, nil
}

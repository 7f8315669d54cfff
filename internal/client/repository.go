package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/db"
)

// Repository provides CRUD operations for clients. Reads attach the
// client's contact.
type Repository struct {
	db       *db.DB
	contacts *contact.Repository
}

// NewRepository creates a client repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{db: d, contacts: contact.NewRepository(d)}
}

const selectColumns = `client_id, typeofClient, contact_id`

// List returns all clients ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*Client, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM client ORDER BY client_id ASC")
}

// ByType returns clients of the given type ordered by ID.
func (r *Repository) ByType(ctx context.Context, t Type) ([]*Client, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM client WHERE typeofClient = ? ORDER BY client_id ASC", string(t))
}

// GetByID returns a client with its contact.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM client WHERE client_id = ?", id).
		Scan(&c.ID, &c.Type, &c.ContactID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying client %d: %w", id, err)
	}

	if err := r.attachContacts(ctx, []*Client{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

// ByIDs returns the clients with the given IDs, contacts attached, keyed by ID.
func (r *Repository) ByIDs(ctx context.Context, ids []int64) (map[int64]*Client, error) {
	found := make(map[int64]*Client, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	err := db.InBatches(ids, func(batch []int64) error {
		query := fmt.Sprintf("SELECT %s FROM client WHERE client_id IN (%s)", selectColumns, db.Placeholders(len(batch)))
		clients, err := r.query(ctx, query, db.IDArgs(batch)...)
		if err != nil {
			return err
		}
		for _, c := range clients {
			found[c.ID] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) (clients []*Client, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Type, &c.ContactID); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}

	if err := r.attachContacts(ctx, clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *Repository) attachContacts(ctx context.Context, clients []*Client) error {
	var ids []int64
	for _, c := range clients {
		if c.ContactID != nil {
			ids = append(ids, *c.ContactID)
		}
	}

	contacts, err := r.contacts.ByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading client contacts: %w", err)
	}
	for _, c := range clients {
		if c.ContactID != nil {
			c.Contact = contacts[*c.ContactID]
		}
	}
	return nil
}

// Create inserts a client and returns its generated ID.
func (r *Repository) Create(ctx context.Context, in *Input) (int64, error) {
	id, err := r.db.Insert(ctx, "client", "client_id",
		[]string{"typeofClient", "contact_id"},
		[]any{in.Type, in.ContactID},
	)
	if err != nil {
		return 0, fmt.Errorf("creating client: %w", err)
	}
	return id, nil
}

// Update applies the fields present in p. It reports false when the
// client does not exist or nothing changed.
func (r *Repository) Update(ctx context.Context, id int64, p *Patch) (bool, error) {
	c := p.changes()
	changed, err := r.db.Update(ctx, "client", "client_id", id, c.Columns(), c.Values())
	if err != nil {
		return false, fmt.Errorf("updating client %d: %w", id, err)
	}
	return changed, nil
}

// Delete removes a client by ID.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, "client", "client_id", id)
	if err != nil {
		return false, fmt.Errorf("deleting client %d: %w", id, err)
	}
	return deleted, nil
}

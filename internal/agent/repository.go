package agent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Repository provides CRUD operations for agents. Reads attach the
// agent's contact.
type Repository struct {
	db       *db.DB
	contacts *contact.Repository
}

// NewRepository creates an agent repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{db: d, contacts: contact.NewRepository(d)}
}

const selectColumns = `agent_id, agent_rating, post_name, salary, currency, hiring_date,
	dismissal_date, department_name, contact_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanAgent(s scanner) (*Agent, error) {
	var a Agent
	err := s.Scan(
		&a.ID, &a.Rating, &a.PostName, &a.Salary, &a.Currency, &a.HiringDate,
		&a.DismissalDate, &a.DepartmentName, &a.ContactID,
	)
	if err != nil {
		return nil, err
	}
	a.HiringDate = a.HiringDate.UTC()
	if a.DismissalDate != nil {
		t := a.DismissalDate.UTC()
		a.DismissalDate = &t
	}
	return &a, nil
}

// List returns all agents ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*Agent, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM agent ORDER BY agent_id ASC")
}

// ByDepartment returns agents whose department name contains name.
// Matching is case-sensitive.
func (r *Repository) ByDepartment(ctx context.Context, name string) ([]*Agent, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM agent WHERE department_name LIKE '%' || ? || '%' ORDER BY agent_id ASC",
		name,
	)
}

// GetByID returns an agent with its contact.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Agent, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM agent WHERE agent_id = ?", id)

	a, err := scanAgent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("agent %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying agent %d: %w", id, err)
	}

	if err := r.attachContacts(ctx, []*Agent{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// ByIDs returns the agents with the given IDs, contacts attached, keyed by ID.
func (r *Repository) ByIDs(ctx context.Context, ids []int64) (map[int64]*Agent, error) {
	found := make(map[int64]*Agent, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	err := db.InBatches(ids, func(batch []int64) error {
		query := fmt.Sprintf("SELECT %s FROM agent WHERE agent_id IN (%s)", selectColumns, db.Placeholders(len(batch)))
		agents, err := r.query(ctx, query, db.IDArgs(batch)...)
		if err != nil {
			return err
		}
		for _, a := range agents {
			found[a.ID] = a
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) (agents []*Agent, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agents: %w", err)
	}

	if err := r.attachContacts(ctx, agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *Repository) attachContacts(ctx context.Context, agents []*Agent) error {
	var ids []int64
	for _, a := range agents {
		if a.ContactID != nil {
			ids = append(ids, *a.ContactID)
		}
	}

	contacts, err := r.contacts.ByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading agent contacts: %w", err)
	}
	for _, a := range agents {
		if a.ContactID != nil {
			a.Contact = contacts[*a.ContactID]
		}
	}
	return nil
}

// Create inserts an agent and returns its generated ID.
func (r *Repository) Create(ctx context.Context, in *Input) (int64, error) {
	hired, err := validate.Time("hiring_date", in.HiringDate)
	if err != nil {
		return 0, err
	}
	var dismissed *time.Time
	if in.DismissalDate != nil {
		t, err := validate.Time("dismissal_date", *in.DismissalDate)
		if err != nil {
			return 0, err
		}
		dismissed = &t
	}
	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	id, err := r.db.Insert(ctx, "agent", "agent_id",
		[]string{"agent_rating", "post_name", "salary", "currency", "hiring_date",
			"dismissal_date", "department_name", "contact_id"},
		[]any{in.Rating, in.PostName, in.Salary, currency, hired,
			dismissed, in.DepartmentName, in.ContactID},
	)
	if err != nil {
		return 0, fmt.Errorf("creating agent: %w", err)
	}
	return id, nil
}

// Update applies the fields present in p. It reports false when the
// agent does not exist or nothing changed.
func (r *Repository) Update(ctx context.Context, id int64, p *Patch) (bool, error) {
	c, err := p.changes()
	if err != nil {
		return false, err
	}
	changed, err := r.db.Update(ctx, "agent", "agent_id", id, c.Columns(), c.Values())
	if err != nil {
		return false, fmt.Errorf("updating agent %d: %w", id, err)
	}
	return changed, nil
}

// Delete removes an agent by ID.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, "agent", "agent_id", id)
	if err != nil {
		return false, fmt.Errorf("deleting agent %d: %w", id, err)
	}
	return deleted, nil
}

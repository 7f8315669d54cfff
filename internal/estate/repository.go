package estate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/db"
)

// Repository provides CRUD operations for estates. Reads attach the
// managing agent and the tenant, each with their contact.
type Repository struct {
	db      *db.DB
	agents  *agent.Repository
	clients *client.Repository
}

// NewRepository creates an estate repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{
		db:      d,
		agents:  agent.NewRepository(d),
		clients: client.NewRepository(d),
	}
}

const selectColumns = `estate_id, estate_name, estate_status, estate_type, square, price, currency,
	country, city, postal_code, street, placement_num, estate_rating, notes, agent_id, tenant_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanEstate(s scanner) (*Estate, error) {
	var e Estate
	err := s.Scan(
		&e.ID, &e.Name, &e.Status, &e.Type, &e.Square, &e.Price, &e.Currency,
		&e.Country, &e.City, &e.PostalCode, &e.Street, &e.PlacementNum, &e.Rating,
		&e.Notes, &e.AgentID, &e.TenantID,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all estates ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*Estate, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM estate ORDER BY estate_id ASC")
}

// ByType returns estates of the given type ordered by ID.
func (r *Repository) ByType(ctx context.Context, estateType string) ([]*Estate, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM estate WHERE estate_type = ? ORDER BY estate_id ASC", estateType)
}

// ByStatus returns estates with the given status ordered by ID.
func (r *Repository) ByStatus(ctx context.Context, status string) ([]*Estate, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM estate WHERE estate_status = ? ORDER BY estate_id ASC", status)
}

// ByPriceRange returns estates priced within [minPrice, maxPrice],
// cheapest first. The caller ensures minPrice <= maxPrice.
func (r *Repository) ByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*Estate, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM estate WHERE price BETWEEN ? AND ? ORDER BY price ASC, estate_id ASC",
		minPrice, maxPrice,
	)
}

// GetByID returns an estate with its agent and tenant.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Estate, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM estate WHERE estate_id = ?", id)

	e, err := scanEstate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("estate %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying estate %d: %w", id, err)
	}

	if err := r.attach(ctx, []*Estate{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// ByIDs returns the estates with the given IDs keyed by ID. Relations are
// not attached.
func (r *Repository) ByIDs(ctx context.Context, ids []int64) (map[int64]*Estate, error) {
	found := make(map[int64]*Estate, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	err := db.InBatches(ids, func(batch []int64) error {
		query := fmt.Sprintf("SELECT %s FROM estate WHERE estate_id IN (%s)", selectColumns, db.Placeholders(len(batch)))
		estates, err := r.scanAll(ctx, query, db.IDArgs(batch)...)
		if err != nil {
			return err
		}
		for _, e := range estates {
			found[e.ID] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]*Estate, error) {
	estates, err := r.scanAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attach(ctx, estates); err != nil {
		return nil, err
	}
	return estates, nil
}

func (r *Repository) scanAll(ctx context.Context, query string, args ...any) (estates []*Estate, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing estates: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		e, err := scanEstate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning estate: %w", err)
		}
		estates = append(estates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estates: %w", err)
	}

	return estates, nil
}

func (r *Repository) attach(ctx context.Context, estates []*Estate) error {
	var agentIDs, tenantIDs []int64
	for _, e := range estates {
		if e.AgentID != nil {
			agentIDs = append(agentIDs, *e.AgentID)
		}
		if e.TenantID != nil {
			tenantIDs = append(tenantIDs, *e.TenantID)
		}
	}

	agents, err := r.agents.ByIDs(ctx, agentIDs)
	if err != nil {
		return fmt.Errorf("loading estate agents: %w", err)
	}
	tenants, err := r.clients.ByIDs(ctx, tenantIDs)
	if err != nil {
		return fmt.Errorf("loading estate tenants: %w", err)
	}

	for _, e := range estates {
		if e.AgentID != nil {
			e.Agent = agents[*e.AgentID]
		}
		if e.TenantID != nil {
			e.Tenant = tenants[*e.TenantID]
		}
	}
	return nil
}

// Create inserts an estate and returns its generated ID.
func (r *Repository) Create(ctx context.Context, in *Input) (int64, error) {
	currency := in.Currency
	if currency == "" {
		currency = agent.DefaultCurrency
	}

	id, err := r.db.Insert(ctx, "estate", "estate_id",
		[]string{"estate_name", "estate_status", "estate_type", "square", "price", "currency",
			"country", "city", "postal_code", "street", "placement_num", "estate_rating",
			"notes", "agent_id", "tenant_id"},
		[]any{in.Name, in.Status, in.Type, in.Square, in.Price, currency,
			in.Country, in.City, in.PostalCode, in.Street, in.PlacementNum, in.Rating,
			in.Notes, in.AgentID, in.TenantID},
	)
	if err != nil {
		return 0, fmt.Errorf("creating estate: %w", err)
	}
	return id, nil
}

// Update applies the fields present in p. It reports false when the
// estate does not exist or nothing changed.
func (r *Repository) Update(ctx context.Context, id int64, p *Patch) (bool, error) {
	c := p.changes()
	changed, err := r.db.Update(ctx, "estate", "estate_id", id, c.Columns(), c.Values())
	if err != nil {
		return false, fmt.Errorf("updating estate %d: %w", id, err)
	}
	return changed, nil
}

// Delete removes an estate by ID. Contracts referencing it keep their rows.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, "estate", "estate_id", id)
	if err != nil {
		return false, fmt.Errorf("deleting estate %d: %w", id, err)
	}
	return deleted, nil
}

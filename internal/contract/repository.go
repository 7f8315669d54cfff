package contract

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/estate"
)

// Repository provides CRUD and lookup operations for contracts. Reads
// attach the estate, the agent, the tenant and the renter.
type Repository struct {
	db      *db.DB
	estates *estate.Repository
	agents  *agent.Repository
	clients *client.Repository
}

// NewRepository creates a contract repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{
		db:      d,
		estates: estate.NewRepository(d),
		agents:  agent.NewRepository(d),
		clients: client.NewRepository(d),
	}
}

const selectColumns = `contract_id, contract_name, contract_status, signing_date, validity_period,
	notes, estate_id, agent_id, tenant_id, renter_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanContract(s scanner) (*Contract, error) {
	var c Contract
	err := s.Scan(
		&c.ID, &c.Name, &c.Status, &c.SigningDate, &c.ValidityPeriod,
		&c.Notes, &c.EstateID, &c.AgentID, &c.TenantID, &c.RenterID,
	)
	if err != nil {
		return nil, err
	}
	c.SigningDate = c.SigningDate.UTC()
	c.ValidityPeriod = c.ValidityPeriod.UTC()
	return &c, nil
}

// List returns all contracts ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*Contract, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM contract ORDER BY contract_id ASC")
}

// ByStatus returns contracts with the given status ordered by ID.
func (r *Repository) ByStatus(ctx context.Context, status string) ([]*Contract, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM contract WHERE contract_status = ? ORDER BY contract_id ASC", status)
}

// ByType returns contracts whose name contains kind, e.g. "Rental" or "Sale".
func (r *Repository) ByType(ctx context.Context, kind string) ([]*Contract, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM contract WHERE contract_name LIKE '%' || ? || '%' ORDER BY contract_id ASC",
		kind,
	)
}

// ByClient returns contracts where the client is either tenant or renter.
func (r *Repository) ByClient(ctx context.Context, clientID int64) ([]*Contract, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM contract WHERE tenant_id = ? OR renter_id = ? ORDER BY contract_id ASC",
		clientID, clientID,
	)
}

// ByEstate returns contracts over the given estate ordered by ID.
func (r *Repository) ByEstate(ctx context.Context, estateID int64) ([]*Contract, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM contract WHERE estate_id = ? ORDER BY contract_id ASC", estateID)
}

// ByAgent returns contracts handled by the given agent ordered by ID.
func (r *Repository) ByAgent(ctx context.Context, agentID int64) ([]*Contract, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM contract WHERE agent_id = ? ORDER BY contract_id ASC", agentID)
}

// Active returns active contracts still valid after now.
func (r *Repository) Active(ctx context.Context, now time.Time) ([]*Contract, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM contract WHERE validity_period > ? AND contract_status = ? ORDER BY contract_id ASC",
		now.UTC(), StatusActive,
	)
}

// ExpiringSoon returns active contracts whose validity ends within the
// next days days, soonest first. Windows beyond MaxExpiringDays are
// clamped.
func (r *Repository) ExpiringSoon(ctx context.Context, now time.Time, days int) ([]*Contract, error) {
	if days <= 0 {
		days = DefaultExpiringDays
	}
	days = min(days, MaxExpiringDays)
	from := now.UTC()
	until := from.AddDate(0, 0, days)
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM contract WHERE validity_period BETWEEN ? AND ? AND contract_status = ? ORDER BY validity_period ASC, contract_id ASC",
		from, until, StatusActive,
	)
}

// ExpireLapsed marks active contracts whose validity ended before now as
// expired and returns how many were changed.
func (r *Repository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE contract SET contract_status = ? WHERE contract_status = ? AND validity_period < ?",
		StatusExpired, StatusActive, now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("expiring contracts: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

// Latest returns at most limit contracts, most recently signed first.
func (r *Repository) Latest(ctx context.Context, limit int) ([]*Contract, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM contract ORDER BY signing_date DESC, contract_id DESC LIMIT ?",
		limit,
	)
}

// GetByID returns a contract with its relations.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Contract, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM contract WHERE contract_id = ?", id)

	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contract %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying contract %d: %w", id, err)
	}

	if err := r.attach(ctx, []*Contract{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) (contracts []*Contract, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}

	if err := r.attach(ctx, contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *Repository) attach(ctx context.Context, contracts []*Contract) error {
	var estateIDs, agentIDs, clientIDs []int64
	for _, c := range contracts {
		if c.EstateID != nil {
			estateIDs = append(estateIDs, *c.EstateID)
		}
		if c.AgentID != nil {
			agentIDs = append(agentIDs, *c.AgentID)
		}
		if c.TenantID != nil {
			clientIDs = append(clientIDs, *c.TenantID)
		}
		if c.RenterID != nil {
			clientIDs = append(clientIDs, *c.RenterID)
		}
	}

	estates, err := r.estates.ByIDs(ctx, estateIDs)
	if err != nil {
		return fmt.Errorf("loading contract estates: %w", err)
	}
	agents, err := r.agents.ByIDs(ctx, agentIDs)
	if err != nil {
		return fmt.Errorf("loading contract agents: %w", err)
	}
	clients, err := r.clients.ByIDs(ctx, clientIDs)
	if err != nil {
		return fmt.Errorf("loading contract clients: %w", err)
	}

	for _, c := range contracts {
		if c.EstateID != nil {
			c.Estate = estates[*c.EstateID]
		}
		if c.AgentID != nil {
			c.Agent = agents[*c.AgentID]
		}
		if c.TenantID != nil {
			c.Tenant = clients[*c.TenantID]
		}
		if c.RenterID != nil {
			c.Renter = clients[*c.RenterID]
		}
	}
	return nil
}

// Create inserts a contract and returns its generated ID.
func (r *Repository) Create(ctx context.Context, in *Input) (int64, error) {
	signed, validUntil, err := in.period()
	if err != nil {
		return 0, err
	}

	id, err := r.db.Insert(ctx, "contract", "contract_id",
		[]string{"contract_name", "contract_status", "signing_date", "validity_period",
			"notes", "estate_id", "agent_id", "tenant_id", "renter_id"},
		[]any{in.Name, in.Status, signed, validUntil,
			in.Notes, in.EstateID, in.AgentID, in.TenantID, in.RenterID},
	)
	if err != nil {
		return 0, fmt.Errorf("creating contract: %w", err)
	}
	return id, nil
}

// Update applies the fields present in p. It reports false when the
// contract does not exist or nothing changed.
func (r *Repository) Update(ctx context.Context, id int64, p *Patch) (bool, error) {
	c, err := p.changes()
	if err != nil {
		return false, err
	}
	changed, err := r.db.Update(ctx, "contract", "contract_id", id, c.Columns(), c.Values())
	if err != nil {
		return false, fmt.Errorf("updating contract %d: %w", id, err)
	}
	return changed, nil
}

// Delete removes a contract by ID.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, "contract", "contract_id", id)
	if err != nil {
		return false, fmt.Errorf("deleting contract %d: %w", id, err)
	}
	return deleted, nil
}

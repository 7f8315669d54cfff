package offer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Repository provides CRUD operations for offers. Reads attach the client
// and the agent, each with their contact. Lists are newest first.
type Repository struct {
	db      *db.DB
	clients *client.Repository
	agents  *agent.Repository
}

// NewRepository creates an offer repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{
		db:      d,
		clients: client.NewRepository(d),
		agents:  agent.NewRepository(d),
	}
}

const selectColumns = `offer_id, offer_name, offer_date, offer_type, client_feedback, notes,
	client_id, agent_id`

const newestFirst = " ORDER BY offer_date DESC, offer_id DESC"

type scanner interface {
	Scan(dest ...any) error
}

func scanOffer(s scanner) (*Offer, error) {
	var o Offer
	err := s.Scan(
		&o.ID, &o.Name, &o.Date, &o.Type, &o.ClientFeedback, &o.Notes,
		&o.ClientID, &o.AgentID,
	)
	if err != nil {
		return nil, err
	}
	o.Date = o.Date.UTC()
	return &o, nil
}

// List returns all offers.
func (r *Repository) List(ctx context.Context) ([]*Offer, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM offer"+newestFirst)
}

// ByType returns offers of the given type.
func (r *Repository) ByType(ctx context.Context, offerType string) ([]*Offer, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM offer WHERE offer_type = ?"+newestFirst, offerType)
}

// ByClient returns offers made to the given client.
func (r *Repository) ByClient(ctx context.Context, clientID int64) ([]*Offer, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM offer WHERE client_id = ?"+newestFirst, clientID)
}

// ByAgent returns offers made by the given agent.
func (r *Repository) ByAgent(ctx context.Context, agentID int64) ([]*Offer, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM offer WHERE agent_id = ?"+newestFirst, agentID)
}

// Latest returns at most limit offers, newest first, without relations.
func (r *Repository) Latest(ctx context.Context, limit int) ([]*Offer, error) {
	return r.scanAll(ctx, "SELECT "+selectColumns+" FROM offer"+newestFirst+" LIMIT ?", limit)
}

// GetByID returns an offer with its client and agent.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Offer, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM offer WHERE offer_id = ?", id)

	o, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("offer %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying offer %d: %w", id, err)
	}

	if err := r.attach(ctx, []*Offer{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]*Offer, error) {
	offers, err := r.scanAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attach(ctx, offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *Repository) scanAll(ctx context.Context, query string, args ...any) (offers []*Offer, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating offers: %w", err)
	}

	return offers, nil
}

func (r *Repository) attach(ctx context.Context, offers []*Offer) error {
	var clientIDs, agentIDs []int64
	for _, o := range offers {
		if o.ClientID != nil {
			clientIDs = append(clientIDs, *o.ClientID)
		}
		if o.AgentID != nil {
			agentIDs = append(agentIDs, *o.AgentID)
		}
	}

	clients, err := r.clients.ByIDs(ctx, clientIDs)
	if err != nil {
		return fmt.Errorf("loading offer clients: %w", err)
	}
	agents, err := r.agents.ByIDs(ctx, agentIDs)
	if err != nil {
		return fmt.Errorf("loading offer agents: %w", err)
	}

	for _, o := range offers {
		if o.ClientID != nil {
			o.Client = clients[*o.ClientID]
		}
		if o.AgentID != nil {
			o.Agent = agents[*o.AgentID]
		}
	}
	return nil
}

// Create inserts an offer and returns its generated ID.
func (r *Repository) Create(ctx context.Context, in *Input) (int64, error) {
	date, err := validate.Time("offer_date", in.Date)
	if err != nil {
		return 0, err
	}

	id, err := r.db.Insert(ctx, "offer", "offer_id",
		[]string{"offer_name", "offer_date", "offer_type", "client_feedback", "notes",
			"client_id", "agent_id"},
		[]any{in.Name, date, in.Type, in.ClientFeedback, in.Notes,
			in.ClientID, in.AgentID},
	)
	if err != nil {
		return 0, fmt.Errorf("creating offer: %w", err)
	}
	return id, nil
}

// Update applies the fields present in p. It reports false when the
// offer does not exist or nothing changed.
func (r *Repository) Update(ctx context.Context, id int64, p *Patch) (bool, error) {
	c, err := p.changes()
	if err != nil {
		return false, err
	}
	changed, err := r.db.Update(ctx, "offer", "offer_id", id, c.Columns(), c.Values())
	if err != nil {
		return false, fmt.Errorf("updating offer %d: %w", id, err)
	}
	return changed, nil
}

// Delete removes an offer by ID.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, "offer", "offer_id", id)
	if err != nil {
		return false, fmt.Errorf("deleting offer %d: %w", id, err)
	}
	return deleted, nil
}

package request

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

// Repository provides CRUD operations for requests. Reads attach the
// client and its contact. Lists are newest first.
type Repository struct {
	db      *db.DB
	clients *client.Repository
}

// NewRepository creates a request repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{db: d, clients: client.NewRepository(d)}
}

const selectColumns = `request_id, request_name, request_date, request_type, square, price,
	currency, country, city, rental_period_months, notes, client_id`

const newestFirst = " ORDER BY request_date DESC, request_id DESC"

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (*Request, error) {
	var r Request
	err := s.Scan(
		&r.ID, &r.Name, &r.Date, &r.Type, &r.Square, &r.Price,
		&r.Currency, &r.Country, &r.City, &r.RentalPeriodMonths, &r.Notes, &r.ClientID,
	)
	if err != nil {
		return nil, err
	}
	r.Date = r.Date.UTC()
	return &r, nil
}

// List returns all requests.
func (r *Repository) List(ctx context.Context) ([]*Request, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM request"+newestFirst)
}

// ByType returns requests of the given type.
func (r *Repository) ByType(ctx context.Context, requestType string) ([]*Request, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM request WHERE request_type = ?"+newestFirst, requestType)
}

// ByClient returns requests made by the given client.
func (r *Repository) ByClient(ctx context.Context, clientID int64) ([]*Request, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM request WHERE client_id = ?"+newestFirst, clientID)
}

// Latest returns at most limit requests, newest first, without relations.
func (r *Repository) Latest(ctx context.Context, limit int) ([]*Request, error) {
	return r.scanAll(ctx, "SELECT "+selectColumns+" FROM request"+newestFirst+" LIMIT ?", limit)
}

// GetByID returns a request with its client.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Request, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM request WHERE request_id = ?", id)

	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("request %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying request %d: %w", id, err)
	}

	if err := r.attachClients(ctx, []*Request{req}); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]*Request, error) {
	requests, err := r.scanAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachClients(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *Repository) scanAll(ctx context.Context, query string, args ...any) (requests []*Request, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requests: %w", err)
	}

	return requests, nil
}

func (r *Repository) attachClients(ctx context.Context, requests []*Request) error {
	var ids []int64
	for _, req := range requests {
		if req.ClientID != nil {
			ids = append(ids, *req.ClientID)
		}
	}

	clients, err := r.clients.ByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading request clients: %w", err)
	}
	for _, req := range requests {
		if req.ClientID != nil {
			req.Client = clients[*req.ClientID]
		}
	}
	return nil
}

// Create inserts a request and returns its generated ID.
func (r *Repository) Create(ctx context.Context, in *Input) (int64, error) {
	date, err := validate.Time("request_date", in.Date)
	if err != nil {
		return 0, err
	}
	currency := in.Currency
	if currency == "" {
		currency = agent.DefaultCurrency
	}

	id, err := r.db.Insert(ctx, "request", "request_id",
		[]string{"request_name", "request_date", "request_type", "square", "price",
			"currency", "country", "city", "rental_period_months", "notes", "client_id"},
		[]any{in.Name, date, in.Type, in.Square, in.Price,
			currency, in.Country, in.City, in.RentalPeriodMonths, in.Notes, in.ClientID},
	)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	return id, nil
}

// Update applies the fields present in p. It reports false when the
// request does not exist or nothing changed.
func (r *Repository) Update(ctx context.Context, id int64, p *Patch) (bool, error) {
	c, err := p.changes()
	if err != nil {
		return false, err
	}
	changed, err := r.db.Update(ctx, "request", "request_id", id, c.Columns(), c.Values())
	if err != nil {
		return false, fmt.Errorf("updating request %d: %w", id, err)
	}
	return changed, nil
}

// Delete removes a request by ID.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.db.Delete(ctx, "request", "request_id", id)
	if err != nil {
		return false, fmt.Errorf("deleting request %d: %w", id, err)
	}
	return deleted, nil
}

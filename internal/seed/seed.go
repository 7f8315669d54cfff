// Package seed loads a demonstration data set through the repositories.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/contract"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/estate"
	"github.com/evcraddock/estate-office/internal/offer"
	"github.com/evcraddock/estate-office/internal/request"
)

// ErrNotEmpty is returned when any table already holds rows.
var ErrNotEmpty = errors.New("database already contains data")

// Result reports how many rows of each entity were inserted.
type Result struct {
	Contacts  int `json:"contacts"`
	Agents    int `json:"agents"`
	Clients   int `json:"clients"`
	Estates   int `json:"estates"`
	Contracts int `json:"contracts"`
	Requests  int `json:"requests"`
	Offers    int `json:"offers"`
}

type seeder struct {
	d       *db.DB
	contact []int64
	agent   []int64
	client  []int64
	estate  []int64
}

// Run inserts the demo data set into an empty store. Every row passes the
// same validation the API applies.
func Run(ctx context.Context, d *db.DB) (*Result, error) {
	for _, table := range db.Tables() {
		n, err := d.CountRows(ctx, table)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrNotEmpty
		}
	}

	s := &seeder{d: d}
	steps := []func(context.Context) error{
		s.contacts, s.agents, s.clients, s.estates, s.contracts, s.requests, s.offers,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return nil, fmt.Errorf("seeding: %w", err)
		}
	}

	return &Result{
		Contacts:  len(s.contact),
		Agents:    len(s.agent),
		Clients:   len(s.client),
		Estates:   len(s.estate),
		Contracts: len(contractRows),
		Requests:  len(requestRows),
		Offers:    len(offerRows),
	}, nil
}

type validatable interface {
	Validate() error
}

// insert validates in and creates it with create.
func insert[T validatable](ctx context.Context, in T, create func(context.Context, T) (int64, error)) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return create(ctx, in)
}

func (s *seeder) contacts(ctx context.Context) error {
	repo := contact.NewRepository(s.d)
	for _, in := range contactRows {
		id, err := insert(ctx, in, repo.Create)
		if err != nil {
			return err
		}
		s.contact = append(s.contact, id)
	}
	return nil
}

func (s *seeder) agents(ctx context.Context) error {
	repo := agent.NewRepository(s.d)
	for i, row := range agentRows {
		in := *row
		in.ContactID = &s.contact[i]
		id, err := insert(ctx, &in, repo.Create)
		if err != nil {
			return err
		}
		s.agent = append(s.agent, id)
	}
	return nil
}

// clients use contacts 6-10; contacts 1-5 belong to agents.
func (s *seeder) clients(ctx context.Context) error {
	repo := client.NewRepository(s.d)
	kinds := []string{"tenant", "renter", "tenant", "renter", "tenant"}
	for i, kind := range kinds {
		in := &client.Input{Type: kind, ContactID: &s.contact[len(agentRows)+i]}
		id, err := insert(ctx, in, repo.Create)
		if err != nil {
			return err
		}
		s.client = append(s.client, id)
	}
	return nil
}

func (s *seeder) estates(ctx context.Context) error {
	repo := estate.NewRepository(s.d)
	for _, row := range estateRows {
		in := *row.in
		in.AgentID = &s.agent[row.agent]
		if row.tenant >= 0 {
			in.TenantID = &s.client[row.tenant]
		}
		id, err := insert(ctx, &in, repo.Create)
		if err != nil {
			return err
		}
		s.estate = append(s.estate, id)
	}
	return nil
}

func (s *seeder) contracts(ctx context.Context) error {
	repo := contract.NewRepository(s.d)
	for _, row := range contractRows {
		in := *row.in
		in.EstateID = &s.estate[row.estate]
		in.AgentID = &s.agent[row.agent]
		if row.tenant >= 0 {
			in.TenantID = &s.client[row.tenant]
		}
		if row.renter >= 0 {
			in.RenterID = &s.client[row.renter]
		}
		if _, err := insert(ctx, &in, repo.Create); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) requests(ctx context.Context) error {
	repo := request.NewRepository(s.d)
	for i, row := range requestRows {
		in := *row
		in.ClientID = &s.client[i]
		if _, err := insert(ctx, &in, repo.Create); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) offers(ctx context.Context) error {
	repo := offer.NewRepository(s.d)
	for i, row := range offerRows {
		in := *row
		in.ClientID = &s.client[i]
		in.AgentID = &s.agent[i]
		if _, err := insert(ctx, &in, repo.Create); err != nil {
			return err
		}
	}
	return nil
}

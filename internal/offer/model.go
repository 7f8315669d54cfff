// Package offer provides the offer domain model and data access. An offer
// is an estate an agent proposed to a client, with the client's feedback.
package offer

import (
	"time"

	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/patch"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Common offer types. The column accepts any non-empty value.
const (
	TypeSale   = "sale"
	TypeRental = "rental"
)

// Offer is a proposal made to a client.
type Offer struct {
	ID             int64          `json:"offer_id"`
	Name           string         `json:"offer_name"`
	Date           time.Time      `json:"offer_date"`
	Type           string         `json:"offer_type"`
	ClientFeedback *string        `json:"client_feedback"`
	Notes          *string        `json:"notes"`
	ClientID       *int64         `json:"client_id"`
	AgentID        *int64         `json:"agent_id"`
	Client         *client.Client `json:"client,omitempty"`
	Agent          *agent.Agent   `json:"agent,omitempty"`
}

// Input is the body accepted when creating an offer.
type Input struct {
	Name           string  `json:"offer_name" validate:"required,max=100"`
	Date           string  `json:"offer_date" validate:"required,isodate"`
	Type           string  `json:"offer_type" validate:"required,max=50"`
	ClientFeedback *string `json:"client_feedback"`
	Notes          *string `json:"notes"`
	ClientID       *int64  `json:"client_id" validate:"omitempty,gt=0"`
	AgentID        *int64  `json:"agent_id" validate:"omitempty,gt=0"`
}

// Validate checks required fields and the offer date.
func (in *Input) Validate() error {
	return validate.Struct(in)
}

// Patch is the body accepted when updating an offer.
type Patch struct {
	Name           patch.Field[string] `json:"offer_name" validate:"omitempty,min=1,max=100"`
	Date           patch.Field[string] `json:"offer_date" validate:"omitempty,isodate"`
	Type           patch.Field[string] `json:"offer_type" validate:"omitempty,min=1,max=50"`
	ClientFeedback patch.Field[string] `json:"client_feedback"`
	Notes          patch.Field[string] `json:"notes"`
	ClientID       patch.Field[int64]  `json:"client_id" validate:"omitempty,gt=0"`
	AgentID        patch.Field[int64]  `json:"agent_id" validate:"omitempty,gt=0"`
}

// Validate checks the fields present in the patch.
func (p *Patch) Validate() error {
	return validate.Struct(p)
}

func (p *Patch) changes() (*patch.Changes, error) {
	c := &patch.Changes{}
	patch.Required(c, "offer_name", p.Name)
	if err := validate.RequiredTime(c, "offer_date", p.Date); err != nil {
		return nil, err
	}
	patch.Required(c, "offer_type", p.Type)
	patch.Value(c, "client_feedback", p.ClientFeedback)
	patch.Value(c, "notes", p.Notes)
	patch.Value(c, "client_id", p.ClientID)
	patch.Value(c, "agent_id", p.AgentID)
	return c, nil
}

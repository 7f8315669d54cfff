// Package estate provides the estate (property listing) domain model and
// data access.
package estate

import (
	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/patch"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Common statuses and types. Both columns accept any non-empty value.
const (
	StatusAvailable = "available"
	StatusRented    = "rented"
	StatusSold      = "sold"
	StatusReserved  = "reserved"

	TypeHouse      = "house"
	TypeApartment  = "apartment"
	TypeCommercial = "commercial"
)

// Estate is a property managed by the office.
type Estate struct {
	ID           int64          `json:"estate_id"`
	Name         string         `json:"estate_name"`
	Status       string         `json:"estate_status"`
	Type         string         `json:"estate_type"`
	Square       float64        `json:"square"`
	Price        float64        `json:"price"`
	Currency     string         `json:"currency"`
	Country      string         `json:"country"`
	City         string         `json:"city"`
	PostalCode   string         `json:"postal_code"`
	Street       string         `json:"street"`
	PlacementNum string         `json:"placement_num"`
	Rating       string         `json:"estate_rating"`
	Notes        *string        `json:"notes"`
	AgentID      *int64         `json:"agent_id"`
	TenantID     *int64         `json:"tenant_id"`
	Agent        *agent.Agent   `json:"agent,omitempty"`
	Tenant       *client.Client `json:"tenant,omitempty"`
}

// Input is the body accepted when creating an estate.
type Input struct {
	Name         string   `json:"estate_name" validate:"required,max=20"`
	Status       string   `json:"estate_status" validate:"required,max=50"`
	Type         string   `json:"estate_type" validate:"required,max=50"`
	Square       *float64 `json:"square" validate:"required,gt=0"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Currency     string   `json:"currency" validate:"omitempty,len=3"`
	Country      string   `json:"country" validate:"required,max=100"`
	City         string   `json:"city" validate:"required,max=100"`
	PostalCode   string   `json:"postal_code" validate:"required,max=20"`
	Street       string   `json:"street" validate:"required,max=100"`
	PlacementNum string   `json:"placement_num" validate:"required,max=100"`
	Rating       string   `json:"estate_rating" validate:"required,max=20"`
	Notes        *string  `json:"notes"`
	AgentID      *int64   `json:"agent_id" validate:"omitempty,gt=0"`
	TenantID     *int64   `json:"tenant_id" validate:"omitempty,gt=0"`
}

// Validate checks required fields, the area, the price and the currency.
func (in *Input) Validate() error {
	return validate.Struct(in)
}

// Patch is the body accepted when updating an estate.
type Patch struct {
	Name         patch.Field[string]  `json:"estate_name" validate:"omitempty,min=1,max=20"`
	Status       patch.Field[string]  `json:"estate_status" validate:"omitempty,min=1,max=50"`
	Type         patch.Field[string]  `json:"estate_type" validate:"omitempty,min=1,max=50"`
	Square       patch.Field[float64] `json:"square" validate:"omitempty,gt=0"`
	Price        patch.Field[float64] `json:"price" validate:"omitempty,gte=0"`
	Currency     patch.Field[string]  `json:"currency" validate:"omitempty,len=3"`
	Country      patch.Field[string]  `json:"country" validate:"omitempty,min=1,max=100"`
	City         patch.Field[string]  `json:"city" validate:"omitempty,min=1,max=100"`
	PostalCode   patch.Field[string]  `json:"postal_code" validate:"omitempty,min=1,max=20"`
	Street       patch.Field[string]  `json:"street" validate:"omitempty,min=1,max=100"`
	PlacementNum patch.Field[string]  `json:"placement_num" validate:"omitempty,min=1,max=100"`
	Rating       patch.Field[string]  `json:"estate_rating" validate:"omitempty,min=1,max=20"`
	Notes        patch.Field[string]  `json:"notes"`
	AgentID      patch.Field[int64]   `json:"agent_id" validate:"omitempty,gt=0"`
	TenantID     patch.Field[int64]   `json:"tenant_id" validate:"omitempty,gt=0"`
}

// Validate checks the fields present in the patch.
func (p *Patch) Validate() error {
	return validate.Struct(p)
}

func (p *Patch) changes() *patch.Changes {
	c := &patch.Changes{}
	patch.Required(c, "estate_name", p.Name)
	patch.Required(c, "estate_status", p.Status)
	patch.Required(c, "estate_type", p.Type)
	patch.Required(c, "square", p.Square)
	patch.Required(c, "price", p.Price)
	patch.Required(c, "currency", p.Currency)
	patch.Required(c, "country", p.Country)
	patch.Required(c, "city", p.City)
	patch.Required(c, "postal_code", p.PostalCode)
	patch.Required(c, "street", p.Street)
	patch.Required(c, "placement_num", p.PlacementNum)
	patch.Required(c, "estate_rating", p.Rating)
	patch.Value(c, "notes", p.Notes)
	patch.Value(c, "agent_id", p.AgentID)
	patch.Value(c, "tenant_id", p.TenantID)
	return c
}

// Package request provides the client request domain model and data access.
// A request records what a client is looking for: a purchase or a rental
// with optional size, price and location preferences.
package request

import (
	"time"

	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/patch"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Common request types. The column accepts any non-empty value.
const (
	TypePurchase = "purchase"
	TypeRental   = "rental"
)

// Request is a client's search for an estate.
type Request struct {
	ID                 int64          `json:"request_id"`
	Name               string         `json:"request_name"`
	Date               time.Time      `json:"request_date"`
	Type               string         `json:"request_type"`
	Square             *float64       `json:"square"`
	Price              *float64       `json:"price"`
	Currency           string         `json:"currency"`
	Country            *string        `json:"country"`
	City               *string        `json:"city"`
	RentalPeriodMonths *int64         `json:"rental_period_months"`
	Notes              *string        `json:"notes"`
	ClientID           *int64         `json:"client_id"`
	Client             *client.Client `json:"client,omitempty"`
}

// Input is the body accepted when creating a request.
type Input struct {
	Name               string   `json:"request_name" validate:"required,max=100"`
	Date               string   `json:"request_date" validate:"required,isodate"`
	Type               string   `json:"request_type" validate:"required,max=50"`
	Square             *float64 `json:"square" validate:"omitempty,gt=0"`
	Price              *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency           string   `json:"currency" validate:"omitempty,len=3"`
	Country            *string  `json:"country" validate:"omitempty,max=100"`
	City               *string  `json:"city" validate:"omitempty,max=100"`
	RentalPeriodMonths *int64   `json:"rental_period_months" validate:"omitempty,gt=0,lte=1200"`
	Notes              *string  `json:"notes"`
	ClientID           *int64   `json:"client_id" validate:"omitempty,gt=0"`
}

// Validate checks required fields and the optional numeric bounds.
func (in *Input) Validate() error {
	return validate.Struct(in)
}

// Patch is the body accepted when updating a request.
type Patch struct {
	Name               patch.Field[string]  `json:"request_name" validate:"omitempty,min=1,max=100"`
	Date               patch.Field[string]  `json:"request_date" validate:"omitempty,isodate"`
	Type               patch.Field[string]  `json:"request_type" validate:"omitempty,min=1,max=50"`
	Square             patch.Field[float64] `json:"square" validate:"omitempty,gt=0"`
	Price              patch.Field[float64] `json:"price" validate:"omitempty,gte=0"`
	Currency           patch.Field[string]  `json:"currency" validate:"omitempty,len=3"`
	Country            patch.Field[string]  `json:"country" validate:"omitempty,max=100"`
	City               patch.Field[string]  `json:"city" validate:"omitempty,max=100"`
	RentalPeriodMonths patch.Field[int64]   `json:"rental_period_months" validate:"omitempty,gt=0,lte=1200"`
	Notes              patch.Field[string]  `json:"notes"`
	ClientID           patch.Field[int64]   `json:"client_id" validate:"omitempty,gt=0"`
}

// Validate checks the fields present in the patch.
func (p *Patch) Validate() error {
	return validate.Struct(p)
}

func (p *Patch) changes() (*patch.Changes, error) {
	c := &patch.Changes{}
	patch.Required(c, "request_name", p.Name)
	if err := validate.RequiredTime(c, "request_date", p.Date); err != nil {
		return nil, err
	}
	patch.Required(c, "request_type", p.Type)
	patch.Value(c, "square", p.Square)
	patch.Value(c, "price", p.Price)
	patch.Required(c, "currency", p.Currency)
	patch.Value(c, "country", p.Country)
	patch.Value(c, "city", p.City)
	patch.Value(c, "rental_period_months", p.RentalPeriodMonths)
	patch.Value(c, "notes", p.Notes)
	patch.Value(c, "client_id", p.ClientID)
	return c, nil
}

// Package contact provides the contact domain model and data access.
// Contacts hold the personal details shared by agents and clients.
package contact

import (
	"github.com/evcraddock/estate-office/internal/patch"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Contact is a person's identity and address record.
type Contact struct {
	ID           int64   `json:"contact_id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	FatherName   string  `json:"father_name"`
	Document     string  `json:"document"`
	Telephone    string  `json:"telephone"`
	Email        string  `json:"email"`
	Country      string  `json:"country"`
	City         string  `json:"city"`
	PostalCode   string  `json:"postal_code"`
	Street       string  `json:"street"`
	PlacementNum string  `json:"placement_num"`
	Notes        *string `json:"notes"`
}

// Input is the body accepted when creating a contact.
type Input struct {
	Name         string  `json:"name" validate:"required,max=20"`
	Surname      string  `json:"surname" validate:"required,max=20"`
	FatherName   string  `json:"father_name" validate:"required,max=20"`
	Document     string  `json:"document" validate:"required,max=20"`
	Telephone    string  `json:"telephone" validate:"required,max=50"`
	Email        string  `json:"email" validate:"required,max=255"`
	Country      string  `json:"country" validate:"required,max=100"`
	City         string  `json:"city" validate:"required,max=100"`
	PostalCode   string  `json:"postal_code" validate:"required,max=20"`
	Street       string  `json:"street" validate:"required,max=100"`
	PlacementNum string  `json:"placement_num" validate:"required,max=100"`
	Notes        *string `json:"notes"`
}

// Validate checks required fields.
func (in *Input) Validate() error {
	return validate.Struct(in)
}

// Patch is the body accepted when updating a contact.
type Patch struct {
	Name         patch.Field[string] `json:"name" validate:"omitempty,min=1,max=20"`
	Surname      patch.Field[string] `json:"surname" validate:"omitempty,min=1,max=20"`
	FatherName   patch.Field[string] `json:"father_name" validate:"omitempty,min=1,max=20"`
	Document     patch.Field[string] `json:"document" validate:"omitempty,min=1,max=20"`
	Telephone    patch.Field[string] `json:"telephone" validate:"omitempty,min=1,max=50"`
	Email        patch.Field[string] `json:"email" validate:"omitempty,min=1,max=255"`
	Country      patch.Field[string] `json:"country" validate:"omitempty,min=1,max=100"`
	City         patch.Field[string] `json:"city" validate:"omitempty,min=1,max=100"`
	PostalCode   patch.Field[string] `json:"postal_code" validate:"omitempty,min=1,max=20"`
	Street       patch.Field[string] `json:"street" validate:"omitempty,min=1,max=100"`
	PlacementNum patch.Field[string] `json:"placement_num" validate:"omitempty,min=1,max=100"`
	Notes        patch.Field[string] `json:"notes"`
}

// Validate checks the fields present in the patch.
func (p *Patch) Validate() error {
	return validate.Struct(p)
}

func (p *Patch) changes() *patch.Changes {
	c := &patch.Changes{}
	patch.Required(c, "name", p.Name)
	patch.Required(c, "surname", p.Surname)
	patch.Required(c, "father_name", p.FatherName)
	patch.Required(c, "document", p.Document)
	patch.Required(c, "telephone", p.Telephone)
	patch.Required(c, "email", p.Email)
	patch.Required(c, "country", p.Country)
	patch.Required(c, "city", p.City)
	patch.Required(c, "postal_code", p.PostalCode)
	patch.Required(c, "street", p.Street)
	patch.Required(c, "placement_num", p.PlacementNum)
	patch.Value(c, "notes", p.Notes)
	return c
}

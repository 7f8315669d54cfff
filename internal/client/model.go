// Package client provides the client domain model and data access.
// A client is a tenant or renter linked to a contact record.
package client

import (
	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/patch"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Type is the role a client plays in a deal.
type Type string

const (
	Tenant Type = "tenant"
	Renter Type = "renter"
)

// ValidTypes is the set of allowed client types.
var ValidTypes = []Type{Tenant, Renter}

// IsValid checks if a client type is recognized.
func (t Type) IsValid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Client is a tenant or renter.
type Client struct {
	ID        int64            `json:"client_id"`
	Type      Type             `json:"typeofClient"`
	ContactID *int64           `json:"contact_id"`
	Contact   *contact.Contact `json:"contact,omitempty"`
}

// Input is the body accepted when creating a client.
type Input struct {
	Type      string `json:"typeofClient" validate:"required,oneof=tenant renter"`
	ContactID *int64 `json:"contact_id" validate:"omitempty,gt=0"`
}

// Validate checks the client type and contact reference.
func (in *Input) Validate() error {
	return validate.Struct(in)
}

// Patch is the body accepted when updating a client.
type Patch struct {
	Type      patch.Field[string] `json:"typeofClient" validate:"omitempty,oneof=tenant renter"`
	ContactID patch.Field[int64]  `json:"contact_id" validate:"omitempty,gt=0"`
}

// Validate checks the fields present in the patch.
func (p *Patch) Validate() error {
	return validate.Struct(p)
}

func (p *Patch) changes() *patch.Changes {
	c := &patch.Changes{}
	patch.Required(c, "typeofClient", p.Type)
	patch.Value(c, "contact_id", p.ContactID)
	return c
}

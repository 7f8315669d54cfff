// Package contract provides the contract domain model and data access.
package contract

import (
	"time"

	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/estate"
	"github.com/evcraddock/estate-office/internal/patch"
	"github.com/evcraddock/estate-office/internal/validate"
)

// Common contract statuses. The column accepts any non-empty value.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// DefaultExpiringDays is the look-ahead window for expiring contracts.
const DefaultExpiringDays = 30

// MaxExpiringDays caps the look-ahead window.
const MaxExpiringDays = 3650

// Contract is a signed agreement over an estate.
type Contract struct {
	ID             int64          `json:"contract_id"`
	Name           string         `json:"contract_name"`
	Status         string         `json:"contract_status"`
	SigningDate    time.Time      `json:"signing_date"`
	ValidityPeriod time.Time      `json:"validity_period"`
	Notes          *string        `json:"notes"`
	EstateID       *int64         `json:"estate_id"`
	AgentID        *int64         `json:"agent_id"`
	TenantID       *int64         `json:"tenant_id"`
	RenterID       *int64         `json:"renter_id"`
	Estate         *estate.Estate `json:"estate,omitempty"`
	Agent          *agent.Agent   `json:"agent,omitempty"`
	Tenant         *client.Client `json:"tenant,omitempty"`
	Renter         *client.Client `json:"renter,omitempty"`
}

// Input is the body accepted when creating a contract.
type Input struct {
	Name           string  `json:"contract_name" validate:"required,max=100"`
	Status         string  `json:"contract_status" validate:"required,max=50"`
	SigningDate    string  `json:"signing_date" validate:"required,isodate"`
	ValidityPeriod string  `json:"validity_period" validate:"required,isodate"`
	Notes          *string `json:"notes"`
	EstateID       *int64  `json:"estate_id" validate:"omitempty,gt=0"`
	AgentID        *int64  `json:"agent_id" validate:"omitempty,gt=0"`
	TenantID       *int64  `json:"tenant_id" validate:"omitempty,gt=0"`
	RenterID       *int64  `json:"renter_id" validate:"omitempty,gt=0"`
}

// Validate checks required fields and that the contract ends after it is signed.
func (in *Input) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	_, _, err := in.period()
	return err
}

func (in *Input) period() (signed, validUntil time.Time, err error) {
	if signed, err = validate.Time("signing_date", in.SigningDate); err != nil {
		return
	}
	if validUntil, err = validate.Time("validity_period", in.ValidityPeriod); err != nil {
		return
	}
	err = checkPeriod(signed, validUntil)
	return
}

func checkPeriod(signed, validUntil time.Time) error {
	if !validUntil.After(signed) {
		return validate.Failf("validity_period", "Validity period must be after signing date")
	}
	return nil
}

// Patch is the body accepted when updating a contract.
type Patch struct {
	Name           patch.Field[string] `json:"contract_name" validate:"omitempty,min=1,max=100"`
	Status         patch.Field[string] `json:"contract_status" validate:"omitempty,min=1,max=50"`
	SigningDate    patch.Field[string] `json:"signing_date" validate:"omitempty,isodate"`
	ValidityPeriod patch.Field[string] `json:"validity_period" validate:"omitempty,isodate"`
	Notes          patch.Field[string] `json:"notes"`
	EstateID       patch.Field[int64]  `json:"estate_id" validate:"omitempty,gt=0"`
	AgentID        patch.Field[int64]  `json:"agent_id" validate:"omitempty,gt=0"`
	TenantID       patch.Field[int64]  `json:"tenant_id" validate:"omitempty,gt=0"`
	RenterID       patch.Field[int64]  `json:"renter_id" validate:"omitempty,gt=0"`
}

// Validate checks the fields present in the patch. The period is only
// compared when both dates are supplied.
func (p *Patch) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if !p.SigningDate.Present() || !p.ValidityPeriod.Present() {
		return nil
	}
	signed, err := validate.Time("signing_date", p.SigningDate.Value)
	if err != nil {
		return err
	}
	validUntil, err := validate.Time("validity_period", p.ValidityPeriod.Value)
	if err != nil {
		return err
	}
	return checkPeriod(signed, validUntil)
}

func (p *Patch) changes() (*patch.Changes, error) {
	c := &patch.Changes{}
	patch.Required(c, "contract_name", p.Name)
	patch.Required(c, "contract_status", p.Status)
	if err := validate.RequiredTime(c, "signing_date", p.SigningDate); err != nil {
		return nil, err
	}
	if err := validate.RequiredTime(c, "validity_period", p.ValidityPeriod); err != nil {
		return nil, err
	}
	patch.Value(c, "notes", p.Notes)
	patch.Value(c, "estate_id", p.EstateID)
	patch.Value(c, "agent_id", p.AgentID)
	patch.Value(c, "tenant_id", p.TenantID)
	patch.Value(c, "renter_id", p.RenterID)
	return c, nil
}

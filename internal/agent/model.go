// Package agent provides the agent domain model and data access.
package agent

import (
	"time"

	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/patch"
	"github.com/evcraddock/estate-office/internal/validate"
)

// DefaultCurrency is used when a salary or price omits its currency.
const DefaultCurrency = "USD"

// Agent is an employee who handles estates, contracts and offers.
type Agent struct {
	ID             int64            `json:"agent_id"`
	Rating         string           `json:"agent_rating"`
	PostName       string           `json:"post_name"`
	Salary         float64          `json:"salary"`
	Currency       string           `json:"currency"`
	HiringDate     time.Time        `json:"hiring_date"`
	DismissalDate  *time.Time       `json:"dismissal_date"`
	DepartmentName string           `json:"department_name"`
	ContactID      *int64           `json:"contact_id"`
	Contact        *contact.Contact `json:"contact,omitempty"`
}

// Input is the body accepted when creating an agent.
type Input struct {
	Rating         string   `json:"agent_rating" validate:"required,max=20"`
	PostName       string   `json:"post_name" validate:"required,max=30"`
	Salary         *float64 `json:"salary" validate:"required,gte=0"`
	Currency       string   `json:"currency" validate:"required,len=3"`
	HiringDate     string   `json:"hiring_date" validate:"required,isodate"`
	DismissalDate  *string  `json:"dismissal_date" validate:"omitempty,isodate"`
	DepartmentName string   `json:"department_name" validate:"required,max=30"`
	ContactID      *int64   `json:"contact_id" validate:"omitempty,gt=0"`
}

// Validate checks required fields, the currency code and the dates.
func (in *Input) Validate() error {
	return validate.Struct(in)
}

// Patch is the body accepted when updating an agent.
type Patch struct {
	Rating         patch.Field[string]  `json:"agent_rating" validate:"omitempty,min=1,max=20"`
	PostName       patch.Field[string]  `json:"post_name" validate:"omitempty,min=1,max=30"`
	Salary         patch.Field[float64] `json:"salary" validate:"omitempty,gte=0"`
	Currency       patch.Field[string]  `json:"currency" validate:"omitempty,len=3"`
	HiringDate     patch.Field[string]  `json:"hiring_date" validate:"omitempty,isodate"`
	DismissalDate  patch.Field[string]  `json:"dismissal_date" validate:"omitempty,isodate"`
	DepartmentName patch.Field[string]  `json:"department_name" validate:"omitempty,min=1,max=30"`
	ContactID      patch.Field[int64]   `json:"contact_id" validate:"omitempty,gt=0"`
}

// Validate checks the fields present in the patch.
func (p *Patch) Validate() error {
	return validate.Struct(p)
}

func (p *Patch) changes() (*patch.Changes, error) {
	c := &patch.Changes{}
	patch.Required(c, "agent_rating", p.Rating)
	patch.Required(c, "post_name", p.PostName)
	patch.Required(c, "salary", p.Salary)
	patch.Required(c, "currency", p.Currency)
	if err := validate.RequiredTime(c, "hiring_date", p.HiringDate); err != nil {
		return nil, err
	}
	if err := validate.NullableTime(c, "dismissal_date", p.DismissalDate); err != nil {
		return nil, err
	}
	patch.Required(c, "department_name", p.DepartmentName)
	patch.Value(c, "contact_id", p.ContactID)
	return c, nil
}

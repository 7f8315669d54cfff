package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/patch"
)

func TestCreateTenantWithContact(t *testing.T) {
	repo, contacts := testRepos(t)
	ctx := context.Background()

	contactID := createContact(t, contacts, "Lisa")

	id, err := repo.Create(ctx, &Input{Type: "tenant", ContactID: &contactID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Type != Tenant {
		t.Errorf("type = %q, want %q", c.Type, Tenant)
	}
	if c.Contact == nil {
		t.Fatal("expected contact to be attached")
	}
	if c.Contact.Name != "Lisa" {
		t.Errorf("contact name = %q, want Lisa", c.Contact.Name)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := testRepos(t)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestByType(t *testing.T) {
	repo, _ := testRepos(t)
	ctx := context.Background()

	for _, kind := range []string{"tenant", "renter", "tenant"} {
		if _, err := repo.Create(ctx, &Input{Type: kind}); err != nil {
			t.Fatalf("create %s: %v", kind, err)
		}
	}

	tests := []struct {
		kind Type
		want int
	}{
		{Tenant, 2},
		{Renter, 1},
	}
	for _, tt := range tests {
		clients, err := repo.ByType(ctx, tt.kind)
		if err != nil {
			t.Fatalf("by type %s: %v", tt.kind, err)
		}
		if len(clients) != tt.want {
			t.Errorf("by type %s: got %d, want %d", tt.kind, len(clients), tt.want)
		}
		for _, c := range clients {
			if c.Type != tt.kind {
				t.Errorf("client %d type = %q, want %q", c.ID, c.Type, tt.kind)
			}
			if c.Contact != nil {
				t.Errorf("client %d has unexpected contact", c.ID)
			}
		}
	}
}

func TestCreateRejectsUnknownTypeInDB(t *testing.T) {
	repo, _ := testRepos(t)

	if _, err := repo.Create(context.Background(), &Input{Type: "owner"}); err == nil {
		t.Fatal("expected check constraint to reject unknown type")
	}
}

func TestDeleteContactNullsReference(t *testing.T) {
	repo, contacts := testRepos(t)
	ctx := context.Background()

	contactID := createContact(t, contacts, "Robert")
	id, err := repo.Create(ctx, &Input{Type: "renter", ContactID: &contactID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := contacts.Delete(ctx, contactID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}

	c, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.ContactID != nil {
		t.Errorf("contact_id = %d, want nil", *c.ContactID)
	}
	if c.Contact != nil {
		t.Error("expected no contact after delete")
	}
}

func TestUpdate(t *testing.T) {
	repo, contacts := testRepos(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &Input{Type: "tenant"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	contactID := createContact(t, contacts, "Jessica")

	tests := []struct {
		name  string
		patch Patch
		want  bool
	}{
		{"no fields", Patch{}, false},
		{"same type", Patch{Type: patch.Of("tenant")}, false},
		{"link contact", Patch{ContactID: patch.Of(contactID)}, true},
		{"switch type", Patch{Type: patch.Of("renter")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Update(ctx, id, &tt.patch)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if got != tt.want {
				t.Errorf("changed = %v, want %v", got, tt.want)
			}
		})
	}

	c, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Type != Renter || c.Contact == nil {
		t.Errorf("client = %+v, want renter with contact", c)
	}
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantMsg string
	}{
		{"tenant", Input{Type: "tenant"}, ""},
		{"renter", Input{Type: "renter"}, ""},
		{"missing type", Input{}, "Missing required field: typeofClient"},
		{"unknown type", Input{Type: "landlord"}, `Invalid client type. Must be "tenant" or "renter"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Errorf("err = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestTypeValid(t *testing.T) {
	tests := []struct {
		t    Type
		want bool
	}{
		{Tenant, true},
		{Renter, true},
		{"owner", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.t.IsValid(); got != tt.want {
			t.Errorf("Type(%q).IsValid() = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func createContact(t *testing.T, contacts *contact.Repository, name string) int64 {
	t.Helper()
	id, err := contacts.Create(context.Background(), &contact.Input{
		Name: name, Surname: "Garcia", FatherName: "Carlos", Document: "ID99887766",
		Telephone: "+1-555-0106", Email: "lisa.garcia@email.com", Country: "USA",
		City: "Philadelphia", PostalCode: "19101", Street: "Market St", PlacementNum: "303",
	})
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	return id
}

func testRepos(t *testing.T) (*Repository, *contact.Repository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d), contact.NewRepository(d)
}

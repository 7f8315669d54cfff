package cli

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/seed"
	"github.com/evcraddock/estate-office/internal/web"
)

// seededServer starts the API over a seeded temp database and points the
// CLI at it.
func seededServer(t *testing.T) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})
	if _, err := seed.Run(context.Background(), d); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv := httptest.NewServer(web.NewServer(d))
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("EO_SERVER_URL", srv.URL)
}

func TestListCommand(t *testing.T) {
	seededServer(t)

	out, err := executeCommand("list", "estates")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Sunset Villa", "450,000", "Total: 10 estates"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListCommandJSON(t *testing.T) {
	seededServer(t)

	out, err := executeCommand("list", "agents", "--format", "json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var agents []map[string]any
	if err := json.Unmarshal([]byte(out), &agents); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(agents) != 5 {
		t.Errorf("got %d agents, want 5", len(agents))
	}
}

func TestShowCommand(t *testing.T) {
	seededServer(t)

	out, err := executeCommand("show", "contracts", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Rental Agreement - Downtown Apt", "estate:", "Downtown Apartment", "tenant:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommandNotFound(t *testing.T) {
	seededServer(t)

	_, err := executeCommand("show", "offers", "999")
	if err == nil || err.Error() != "Offer not found" {
		t.Fatalf("err = %v, want Offer not found", err)
	}
}

func TestRemoveCommand(t *testing.T) {
	seededServer(t)

	out, err := executeCommand("remove", "requests", "2")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out, "Request deleted successfully") {
		t.Errorf("output = %q", out)
	}

	if _, err := executeCommand("remove", "requests", "2"); err == nil {
		t.Fatal("expected error removing twice")
	}
}

func TestStatsCommand(t *testing.T) {
	seededServer(t)

	out, err := executeCommand("stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "contacts:") || !strings.Contains(out, "10") {
		t.Errorf("output = %q", out)
	}

	out, err = executeCommand("stats", "recent-activities")
	if err != nil {
		t.Fatalf("recent activities: %v", err)
	}
	if !strings.Contains(out, "Studio Loft Tour") {
		t.Errorf("expected newest offer in activity feed:\n%s", out)
	}
}

func TestMigrateAndSeedCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")

	out, err := executeCommand("migrate", "--db", path)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "sqlite3") {
		t.Errorf("migrate output = %q", out)
	}

	out, err = executeCommand("seed", "--db", path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "Seeded 10 contacts") {
		t.Errorf("seed output = %q", out)
	}

	if _, err := executeCommand("seed", "--db", path); err == nil {
		t.Fatal("expected second seed to fail")
	}
}

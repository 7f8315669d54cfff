package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "estate.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "estate.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "estate.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
			if d.Dialect() != SQLite {
				t.Errorf("dialect = %q, want %q", d.Dialect(), SQLite)
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrations(t *testing.T) {
	d := openTestDB(t)

	for _, table := range Tables() {
		t.Run(table, func(t *testing.T) {
			rows, err := d.Query("SELECT name FROM pragma_table_info(?)", table)
			if err != nil {
				t.Fatalf("table info: %v", err)
			}
			defer func() { _ = rows.Close() }()

			got := make(map[string]bool)
			for rows.Next() {
				var name string
				if err := rows.Scan(&name); err != nil {
					t.Fatalf("scan: %v", err)
				}
				got[name] = true
			}
			if err := rows.Err(); err != nil {
				t.Fatalf("rows: %v", err)
			}

			for _, col := range schema[table] {
				if !got[col] {
					t.Errorf("column %s.%s missing", table, col)
				}
			}
		})
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d := openTestDB(t)

	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLite, "SELECT * FROM agent WHERE agent_id = ?", "SELECT * FROM agent WHERE agent_id = ?"},
		{Postgres, "SELECT * FROM agent WHERE agent_id = ?", "SELECT * FROM agent WHERE agent_id = $1"},
		{Postgres, "UPDATE t SET a = ?, b = ? WHERE id = ?", "UPDATE t SET a = $1, b = $2 WHERE id = $3"},
		{Postgres, "SELECT '?' || ? FROM t", "SELECT '?' || $1 FROM t"},
	}

	for _, tt := range tests {
		d := Wrap(nil, tt.dialect)
		if got := d.Rebind(tt.in); got != tt.want {
			t.Errorf("Rebind(%q) [%s] = %q, want %q", tt.in, tt.dialect, got, tt.want)
		}
	}
}

func TestIsPostgresURL(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"postgres://user@localhost/estate", true},
		{"postgresql://user@localhost/estate", true},
		{"/var/lib/estate/estate.db", false},
		{"estate.db", false},
	}
	for _, tt := range tests {
		if got := IsPostgresURL(tt.target); got != tt.want {
			t.Errorf("IsPostgresURL(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestUniqueIDs(t *testing.T) {
	got := UniqueIDs([]int64{3, 1, 3, 2, 1})
	want := []int64{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("UniqueIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UniqueIDs = %v, want %v", got, want)
		}
	}
}

func TestInBatches(t *testing.T) {
	tests := []struct {
		name      string
		ids       []int64
		wantSizes []int
	}{
		{"empty", nil, nil},
		{"duplicates collapse", []int64{7, 7, 7, 7}, []int{1}},
		{"exact batch", seqIDs(MaxInArgs), []int{MaxInArgs}},
		{"spills over", seqIDs(2*MaxInArgs + 1), []int{MaxInArgs, MaxInArgs, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sizes []int
			err := InBatches(tt.ids, func(batch []int64) error {
				sizes = append(sizes, len(batch))
				return nil
			})
			if err != nil {
				t.Fatalf("InBatches: %v", err)
			}
			if len(sizes) != len(tt.wantSizes) {
				t.Fatalf("batch sizes = %v, want %v", sizes, tt.wantSizes)
			}
			for i := range sizes {
				if sizes[i] != tt.wantSizes[i] {
					t.Fatalf("batch sizes = %v, want %v", sizes, tt.wantSizes)
				}
			}
		})
	}
}

func TestInBatchesStopsOnError(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := InBatches(seqIDs(3*MaxInArgs), func([]int64) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func seqIDs(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

func TestInsertUpdateDelete(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	id := insertClient(t, d, "tenant")
	if id == 0 {
		t.Fatal("expected non-zero ID")
	}

	tests := []struct {
		name string
		id   int64
		cols []string
		vals []any
		want bool
	}{
		{"empty change set", id, nil, nil, false},
		{"same value", id, []string{"typeofClient"}, []any{"tenant"}, false},
		{"new value", id, []string{"typeofClient"}, []any{"renter"}, true},
		{"missing row", 9999, []string{"typeofClient"}, []any{"tenant"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Update(ctx, "client", "client_id", tt.id, tt.cols, tt.vals)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if got != tt.want {
				t.Errorf("changed = %v, want %v", got, tt.want)
			}
		})
	}

	deleted, err := d.Delete(ctx, "client", "client_id", id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report true")
	}

	deleted, err = d.Delete(ctx, "client", "client_id", id)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report false")
	}
}

func TestUpdateNullToValue(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	id := insertClient(t, d, "renter")

	changed, err := d.Update(ctx, "client", "client_id", id, []string{"contact_id"}, []any{nil})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if changed {
		t.Error("NULL to NULL should not count as a change")
	}
}

func TestUnknownIdentifiersRejected(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if _, err := d.CountRows(ctx, "users; DROP TABLE contact"); err == nil {
		t.Error("expected error for unknown table")
	}
	if _, err := d.GroupCount(ctx, "estate", "password"); err == nil {
		t.Error("expected error for unknown column")
	}
	if _, err := d.Update(ctx, "client", "client_id", 1, []string{"bogus"}, []any{1}); err == nil {
		t.Error("expected error for unknown update column")
	}
}

func TestAggregates(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	insertClient(t, d, "tenant")
	insertClient(t, d, "tenant")
	insertClient(t, d, "renter")

	n, err := d.CountRows(ctx, "client")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	groups, err := d.GroupCount(ctx, "client", "typeofClient")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if groups["tenant"] != 2 || groups["renter"] != 1 {
		t.Errorf("groups = %v, want tenant=2 renter=1", groups)
	}

	sum, err := d.Summarize(ctx, "estate", "price")
	if err != nil {
		t.Fatalf("summarize empty: %v", err)
	}
	if sum != (Summary{}) {
		t.Errorf("empty summary = %+v, want zeros", sum)
	}
}

func TestDatesSinceAndCounts(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for _, offset := range []int{-60, -10, 0, 5} {
		signed := base.AddDate(0, 0, offset)
		_, err := d.Insert(ctx, "contract", "contract_id",
			[]string{"contract_name", "contract_status", "signing_date", "validity_period"},
			[]any{"Lease", "active", signed, signed.AddDate(0, 0, 30)},
		)
		if err != nil {
			t.Fatalf("insert contract: %v", err)
		}
	}

	dates, err := d.DatesSince(ctx, "contract", "signing_date", base.AddDate(0, 0, -10))
	if err != nil {
		t.Fatalf("dates since: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("got %d dates, want 3", len(dates))
	}
	if !dates[0].Equal(base.AddDate(0, 0, -10)) {
		t.Errorf("first = %v, want oldest in window", dates[0])
	}

	after, err := d.CountAfter(ctx, "contract", "validity_period", base.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("count after: %v", err)
	}
	if after != 1 {
		t.Errorf("count after = %d, want 1", after)
	}

	notAfter, err := d.CountNotAfter(ctx, "contract", "validity_period", base.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("count not after: %v", err)
	}
	if notAfter != 3 {
		t.Errorf("count not after = %d, want 3", notAfter)
	}
}

func TestDeleteSetsReferencesNull(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	contactID, err := d.Insert(ctx, "contact", "contact_id",
		[]string{"name", "surname", "father_name", "document", "telephone", "email",
			"country", "city", "postal_code", "street", "placement_num"},
		[]any{"Ann", "Lee", "Roy", "ID1", "+1", "ann@example.com", "USA", "Austin", "73301", "Main", "1"},
	)
	if err != nil {
		t.Fatalf("insert contact: %v", err)
	}

	clientID, err := d.Insert(ctx, "client", "client_id",
		[]string{"typeofClient", "contact_id"}, []any{"tenant", contactID})
	if err != nil {
		t.Fatalf("insert client: %v", err)
	}

	if _, err := d.Delete(ctx, "contact", "contact_id", contactID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}

	var ref *int64
	if err := d.QueryRowContext(ctx, "SELECT contact_id FROM client WHERE client_id = ?", clientID).Scan(&ref); err != nil {
		t.Fatalf("query client: %v", err)
	}
	if ref != nil {
		t.Errorf("contact_id = %d, want NULL", *ref)
	}
}

func insertClient(t *testing.T, d *DB, kind string) int64 {
	t.Helper()
	id, err := d.Insert(context.Background(), "client", "client_id", []string{"typeofClient"}, []any{kind})
	if err != nil {
		t.Fatalf("insert client: %v", err)
	}
	return id
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return d
}

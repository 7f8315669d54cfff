package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evcraddock/estate-office/internal/apiclient"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		dollars  int64
		expected string
	}{
		{"zero", 0, "0"},
		{"small", 999, "999"},
		{"thousands", 250000, "250,000"},
		{"millions", 1000000, "1,000,000"},
		{"negative", -4500, "-4,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatPrice(tt.dollars)
			if result != tt.expected {
				t.Errorf("formatPrice(%d) = %q, want %q", tt.dollars, result, tt.expected)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"whole", 450000.0, "450,000"},
		{"cents", 2500.5, "2,500.50"},
		{"rounds up", 99.999, "100"},
		{"null", nil, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := formatMoney(tt.value); result != tt.expected {
				t.Errorf("formatMoney(%v) = %q, want %q", tt.value, result, tt.expected)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "-"},
		{"string", "tenant", "tenant"},
		{"integer", 42.0, "42"},
		{"fraction", 85.75, "85.75"},
		{"bool", true, "true"},
		{"list", []any{1.0, 2.0}, "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := formatValue(tt.value); result != tt.expected {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, result, tt.expected)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2024-01-15T10:00:00Z"); got != "2024-01-15" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDate(nil); got != "-" {
		t.Errorf("formatDate(nil) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	record := map[string]any{
		"client_id": 1.0,
		"contact":   map[string]any{"name": "Lisa"},
	}

	if got := lookup(record, "contact.name"); got != "Lisa" {
		t.Errorf("contact.name = %v", got)
	}
	if got := lookup(record, "contact.surname"); got != nil {
		t.Errorf("contact.surname = %v, want nil", got)
	}
	if got := lookup(record, "client_id.name"); got != nil {
		t.Errorf("client_id.name = %v, want nil", got)
	}
}

func TestPrintTable(t *testing.T) {
	records := []apiclient.Record{
		{"client_id": 1.0, "typeofClient": "tenant", "contact": map[string]any{"name": "Lisa", "surname": "Garcia"}},
		{"client_id": 2.0, "typeofClient": "renter", "contact_id": nil},
	}

	var buf bytes.Buffer
	if err := printTable(&buf, "clients", records); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"TYPE", "Lisa", "Garcia", "renter", "Total: 2 clients"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printTable(&buf, "offers", nil); err != nil {
		t.Fatalf("print: %v", err)
	}
	if got := buf.String(); got != "No offers found.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrintRecord(t *testing.T) {
	record := map[string]any{
		"estate_id":   3.0,
		"estate_name": "Business Center",
		"agent":       map[string]any{"agent_id": 3.0, "post_name": "Junior Agent"},
	}

	var buf bytes.Buffer
	if err := printRecord(&buf, record, ""); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "estate_name:") || !strings.Contains(out, "Business Center") {
		t.Errorf("missing scalar field:\n%s", out)
	}
	if !strings.Contains(out, "agent:\n  agent_id:") {
		t.Errorf("nested record not indented:\n%s", out)
	}
}

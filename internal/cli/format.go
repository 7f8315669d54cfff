package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/estate-office/internal/apiclient"
)

// column is one table column: a header and a dotted path into a record.
type column struct {
	header string
	path   string
	format func(any) string
}

var tableColumns = map[string][]column{
	"contacts": {
		{"ID", "contact_id", formatValue},
		{"NAME", "name", formatValue},
		{"SURNAME", "surname", formatValue},
		{"PHONE", "telephone", formatValue},
		{"EMAIL", "email", formatValue},
		{"CITY", "city", formatValue},
	},
	"clients": {
		{"ID", "client_id", formatValue},
		{"TYPE", "typeofClient", formatValue},
		{"NAME", "contact.name", formatValue},
		{"SURNAME", "contact.surname", formatValue},
	},
	"agents": {
		{"ID", "agent_id", formatValue},
		{"POST", "post_name", formatValue},
		{"DEPARTMENT", "department_name", formatValue},
		{"SALARY", "salary", formatMoney},
		{"RATING", "agent_rating", formatValue},
		{"HIRED", "hiring_date", formatDate},
	},
	"estates": {
		{"ID", "estate_id", formatValue},
		{"NAME", "estate_name", formatValue},
		{"TYPE", "estate_type", formatValue},
		{"STATUS", "estate_status", formatValue},
		{"SQUARE", "square", formatValue},
		{"PRICE", "price", formatMoney},
		{"CITY", "city", formatValue},
	},
	"contracts": {
		{"ID", "contract_id", formatValue},
		{"NAME", "contract_name", formatValue},
		{"STATUS", "contract_status", formatValue},
		{"SIGNED", "signing_date", formatDate},
		{"VALID UNTIL", "validity_period", formatDate},
		{"ESTATE", "estate.estate_name", formatValue},
	},
	"requests": {
		{"ID", "request_id", formatValue},
		{"NAME", "request_name", formatValue},
		{"TYPE", "request_type", formatValue},
		{"DATE", "request_date", formatDate},
		{"PRICE", "price", formatMoney},
		{"CITY", "city", formatValue},
	},
	"offers": {
		{"ID", "offer_id", formatValue},
		{"NAME", "offer_name", formatValue},
		{"TYPE", "offer_type", formatValue},
		{"DATE", "offer_date", formatDate},
		{"CLIENT", "client_id", formatValue},
		{"AGENT", "agent_id", formatValue},
	},
}

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable prints records of resource as a formatted table.
func printTable(out io.Writer, resource string, records []apiclient.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(out, "No %s found.\n", resource)
		return err
	}

	cols := tableColumns[resource]
	headers := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
		rules[i] = strings.Repeat("-", len(c.header))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.Join(rules, "\t")); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, r := range records {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = truncate(c.format(lookup(r, c.path)), 40)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\nTotal: %d %s\n", len(records), resource)
	return err
}

// printRecord prints one record as aligned key/value lines. Related
// entities are printed as indented blocks after the scalar fields.
func printRecord(out io.Writer, record map[string]any, indent string) error {
	keys := make([]string, 0, len(record))
	var nested []string
	for k, v := range record {
		if _, ok := v.(map[string]any); ok {
			nested = append(nested, k)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sort.Strings(nested)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s%s:\t%s\n", indent, k, formatValue(record[k])); err != nil {
			return fmt.Errorf("writing field: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing fields: %w", err)
	}

	for _, k := range nested {
		if _, err := fmt.Fprintf(out, "%s%s:\n", indent, k); err != nil {
			return err
		}
		if err := printRecord(out, record[k].(map[string]any), indent+"  "); err != nil {
			return err
		}
	}
	return nil
}

// lookup follows a dotted path through nested objects.
func lookup(record map[string]any, path string) any {
	var cur any = record
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// formatValue renders a decoded JSON value for display.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.2f", x)
	case bool:
		return fmt.Sprintf("%t", x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}

// formatDate keeps the calendar date of an RFC 3339 timestamp.
func formatDate(v any) string {
	s, ok := v.(string)
	if !ok {
		return formatValue(v)
	}
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

// formatMoney renders an amount with thousands separators.
func formatMoney(v any) string {
	x, ok := v.(float64)
	if !ok {
		return formatValue(v)
	}
	whole := int64(x)
	cents := int64(math.Round((x - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	if cents == 0 {
		return formatPrice(whole)
	}
	return fmt.Sprintf("%s.%02d", formatPrice(whole), cents)
}

// formatPrice formats a whole amount as a string with commas.
func formatPrice(dollars int64) string {
	sign := ""
	if dollars < 0 {
		sign = "-"
		dollars = -dollars
	}
	s := fmt.Sprintf("%d", dollars)

	// Add commas
	if len(s) <= 3 {
		return sign + s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return sign + strings.Join(parts, ",")
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

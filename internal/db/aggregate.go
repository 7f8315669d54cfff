package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// schema lists the columns of every table. Helpers that splice identifiers
// into SQL only accept names from here.
var schema = map[string][]string{
	"contact": {"contact_id", "name", "surname", "father_name", "document", "telephone", "email",
		"country", "city", "postal_code", "street", "placement_num", "notes"},
	"agent": {"agent_id", "agent_rating", "post_name", "salary", "currency", "hiring_date",
		"dismissal_date", "department_name", "contact_id"},
	"client": {"client_id", "typeofClient", "contact_id"},
	"estate": {"estate_id", "estate_name", "estate_status", "estate_type", "square", "price", "currency",
		"country", "city", "postal_code", "street", "placement_num", "estate_rating", "notes",
		"agent_id", "tenant_id"},
	"contract": {"contract_id", "contract_name", "contract_status", "signing_date", "validity_period",
		"notes", "estate_id", "agent_id", "tenant_id", "renter_id"},
	"request": {"request_id", "request_name", "request_date", "request_type", "square", "price",
		"currency", "country", "city", "rental_period_months", "notes", "client_id"},
	"offer": {"offer_id", "offer_name", "offer_date", "offer_type", "client_feedback", "notes",
		"client_id", "agent_id"},
}

// Tables returns the table names in dependency order.
func Tables() []string {
	return []string{"contact", "agent", "client", "estate", "contract", "request", "offer"}
}

func checkColumns(table string, cols []string) error {
	known, ok := schema[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	for _, c := range cols {
		found := false
		for _, k := range known {
			if c == k {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown column %s.%s", table, c)
		}
	}
	return nil
}

// CountRows returns the number of rows in table.
func (d *DB) CountRows(ctx context.Context, table string) (int64, error) {
	if err := checkColumns(table, nil); err != nil {
		return 0, err
	}

	var n int64
	if err := d.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// CountAfter returns the number of rows whose col is strictly after t.
func (d *DB) CountAfter(ctx context.Context, table, col string, t time.Time) (int64, error) {
	return d.countCompare(ctx, table, col, ">", t)
}

// CountNotAfter returns the number of rows whose col is at or before t.
func (d *DB) CountNotAfter(ctx context.Context, table, col string, t time.Time) (int64, error) {
	return d.countCompare(ctx, table, col, "<=", t)
}

func (d *DB) countCompare(ctx context.Context, table, col, op string, t time.Time) (int64, error) {
	if err := checkColumns(table, []string{col}); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s %s ?", table, col, op)
	var n int64
	if err := d.QueryRowContext(ctx, query, t.UTC()).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s by %s: %w", table, col, err)
	}
	return n, nil
}

// GroupCount returns row counts keyed by the distinct values of col.
// NULL values are grouped under the empty string.
func (d *DB) GroupCount(ctx context.Context, table, col string) (map[string]int64, error) {
	if err := checkColumns(table, []string{col}); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", col, table, col)
	rows, err := d.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("grouping %s by %s: %w", table, col, err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int64)
	for rows.Next() {
		var key sql.NullString
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scanning %s group: %w", table, err)
		}
		counts[key.String] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s groups: %w", table, err)
	}

	return counts, nil
}

// Summary holds AVG, MIN and MAX of a numeric column. All are zero when
// the table has no non-NULL values.
type Summary struct {
	Average float64
	Minimum float64
	Maximum float64
}

// Summarize computes AVG, MIN and MAX over col.
func (d *DB) Summarize(ctx context.Context, table, col string) (Summary, error) {
	if err := checkColumns(table, []string{col}); err != nil {
		return Summary{}, err
	}

	query := fmt.Sprintf("SELECT AVG(%s), MIN(%s), MAX(%s) FROM %s", col, col, col, table)
	var avg, lo, hi sql.NullFloat64
	if err := d.QueryRowContext(ctx, query).Scan(&avg, &lo, &hi); err != nil {
		return Summary{}, fmt.Errorf("summarizing %s.%s: %w", table, col, err)
	}

	return Summary{Average: avg.Float64, Minimum: lo.Float64, Maximum: hi.Float64}, nil
}

// DatesSince returns every value of the timestamp column col at or after
// since, oldest first.
func (d *DB) DatesSince(ctx context.Context, table, col string, since time.Time) ([]time.Time, error) {
	if err := checkColumns(table, []string{col}); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s >= ? ORDER BY %s ASC", col, table, col, col)
	rows, err := d.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("listing %s.%s: %w", table, col, err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning %s.%s: %w", table, col, err)
		}
		dates = append(dates, t.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s.%s: %w", table, col, err)
	}

	return dates, nil
}

package db

import (
	"context"
	"fmt"
	"strings"
)

// Insert adds one row and returns the generated primary key.
func (d *DB) Insert(ctx context.Context, table, pk string, cols []string, vals []any) (int64, error) {
	if err := checkColumns(table, append([]string{pk}, cols...)); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(cols, ", "), Placeholders(len(cols)), pk)

	var id int64
	if err := d.QueryRowContext(ctx, query, vals...).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", table, err)
	}
	return id, nil
}

// Update writes vals into cols for the row whose pk equals id and reports
// whether any stored value actually changed. Rows already holding the
// given values are not counted, so an unchanged patch reports false.
func (d *DB) Update(ctx context.Context, table, pk string, id int64, cols []string, vals []any) (bool, error) {
	if len(cols) == 0 {
		return false, nil
	}
	if len(cols) != len(vals) {
		return false, fmt.Errorf("updating %s: %d columns but %d values", table, len(cols), len(vals))
	}
	if err := checkColumns(table, append([]string{pk}, cols...)); err != nil {
		return false, err
	}

	distinct := "IS NOT"
	if d.dialect == Postgres {
		distinct = "IS DISTINCT FROM"
	}

	sets := make([]string, len(cols))
	diffs := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
		diffs[i] = c + " " + distinct + " ?"
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ? AND (%s)",
		table, strings.Join(sets, ", "), pk, strings.Join(diffs, " OR "))

	args := make([]any, 0, 2*len(vals)+1)
	args = append(args, vals...)
	args = append(args, id)
	args = append(args, vals...)

	result, err := d.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("updating %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows > 0, nil
}

// Delete removes the row whose pk equals id and reports whether it existed.
func (d *DB) Delete(ctx context.Context, table, pk string, id int64) (bool, error) {
	if err := checkColumns(table, []string{pk}); err != nil {
		return false, err
	}

	result, err := d.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, pk), id)
	if err != nil {
		return false, fmt.Errorf("deleting from %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows > 0, nil
}

// Placeholders returns n comma-separated "?" markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// IDArgs converts ids into query arguments for an IN list.
func IDArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// MaxInArgs bounds the number of ids bound into one IN list, well under
// SQLite's variable limit.
const MaxInArgs = 500

// UniqueIDs returns ids without duplicates, keeping first-seen order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// InBatches calls fn with the distinct ids in groups of at most MaxInArgs.
// It stops at the first error.
func InBatches(ids []int64, fn func(batch []int64) error) error {
	ids = UniqueIDs(ids)
	for start := 0; start < len(ids); start += MaxInArgs {
		end := min(start+MaxInArgs, len(ids))
		if err := fn(ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}

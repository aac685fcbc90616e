// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
)

// FileLoader reads catalog and interaction files through an in-memory
// DuckDB instance. CSV, Parquet and JSON are supported, chosen by extension.
type FileLoader struct {
	db *sql.DB
}

// NewFileLoader opens an in-memory DuckDB connection.
func NewFileLoader() (*FileLoader, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	return &FileLoader{db: db}, nil
}

// Close releases the connection.
func (l *FileLoader) Close() error {
	return l.db.Close()
}

// LoadItems reads catalog rows. The id column may be item_id or course_id;
// title may be title or course_title; source may be source or data_source.
func (l *FileLoader) LoadItems(ctx context.Context, path string) ([]Item, error) {
	from := tableFunction(path)
	cols, err := l.columns(ctx, from)
	if err != nil {
		return nil, err
	}
	id := pick(cols, "item_id", "course_id", "id")
	if id == "NULL" {
		return nil, fmt.Errorf("%s: no item_id or course_id column", path)
	}

	query := fmt.Sprintf(`SELECT CAST(%s AS VARCHAR), CAST(%s AS VARCHAR), CAST(%s AS VARCHAR),
		TRY_CAST(%s AS DOUBLE), CAST(%s AS VARCHAR), CAST(%s AS VARCHAR), CAST(%s AS VARCHAR)
		FROM %s WHERE %s IS NOT NULL`,
		id,
		pick(cols, "title", "course_title", "name"),
		pick(cols, "category"),
		pick(cols, "price"),
		pick(cols, "level"),
		pick(cols, "language"),
		pick(cols, "source", "data_source"),
		from, id)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	var items []Item
	for rows.Next() {
		var (
			itemID                                   string
			title, category, level, language, source sql.NullString
			price                                    sql.NullFloat64
		)
		if err := rows.Scan(&itemID, &title, &category, &price, &level, &language, &source); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		it := Item{
			ID:       strings.TrimSpace(itemID),
			Title:    title.String,
			Category: category.String,
			Level:    level.String,
			Language: language.String,
			Source:   strings.ToLower(strings.TrimSpace(source.String)),
		}
		if price.Valid {
			p := price.Float64
			it.Price = &p
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// LoadInteractions reads (user, item) pairs into per-user item lists.
func (l *FileLoader) LoadInteractions(ctx context.Context, path string) (map[string][]string, error) {
	from := tableFunction(path)
	cols, err := l.columns(ctx, from)
	if err != nil {
		return nil, err
	}
	user := pick(cols, "user_id", "user")
	item := pick(cols, "item_id", "course_id")
	if user == "NULL" || item == "NULL" {
		return nil, fmt.Errorf("%s: need user_id and item_id (or course_id) columns", path)
	}

	query := fmt.Sprintf(`SELECT DISTINCT CAST(%s AS VARCHAR), CAST(%s AS VARCHAR)
		FROM %s WHERE %s IS NOT NULL AND %s IS NOT NULL`, user, item, from, user, item)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]string)
	for rows.Next() {
		var u, i string
		if err := rows.Scan(&u, &i); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		out[u] = append(out[u], i)
	}
	return out, rows.Err()
}

// columns returns the lower-cased column names of a table expression.
func (l *FileLoader) columns(ctx context.Context, from string) (map[string]string, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT * FROM "+from+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", from, err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cols := make(map[string]string, len(names))
	for _, n := range names {
		cols[strings.ToLower(n)] = n
	}
	return cols, nil
}

// pick returns the first present column as a quoted identifier, or NULL.
func pick(cols map[string]string, candidates ...string) string {
	for _, c := range candidates {
		if name, ok := cols[c]; ok {
			return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
		}
	}
	return "NULL"
}

func tableFunction(path string) string {
	lit := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet(" + lit + ")"
	case ".json", ".jsonl", ".ndjson":
		return "read_json_auto(" + lit + ")"
	default:
		return "read_csv_auto(" + lit + ")"
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sqlite stores plot documents in a SQLite database.
//
// Documents are keyed by name. Saving a document with an existing name
// replaces it, equations included.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/config"
)

// ErrNotFound is returned when no document has the requested name.
var ErrNotFound = errors.New("sqlite: document not found")

// ErrUnnamed is returned when saving a document without a name.
var ErrUnnamed = errors.New("sqlite: document has no name")

// Store is a document store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Summary describes a stored document.
type Summary struct {
	Name      string
	Equations int
	UpdatedAt time.Time
}

// Open opens or creates the database at path. Use ":memory:" for a
// private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes
	// writers on a file.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	ggplot.Logger().Debug("sqlite: store opened", "path", path)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		width REAL NOT NULL,
		height REAL NOT NULL,
		min_x REAL NOT NULL,
		max_x REAL NOT NULL,
		min_y REAL NOT NULL,
		max_y REAL NOT NULL,
		samples INTEGER NOT NULL DEFAULT 0,
		intercept_a INTEGER,
		intercept_b INTEGER,
		style JSON,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS equations (
		document TEXT NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (document, position),
		FOREIGN KEY (document) REFERENCES documents(name) ON DELETE CASCADE
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts or replaces d.
func (s *Store) Save(ctx context.Context, d *config.Document) error {
	if d.Name == "" {
		return ErrUnnamed
	}
	style, err := json.Marshal(d.Style)
	if err != nil {
		return fmt.Errorf("marshal style: %w", err)
	}
	var ia, ib sql.NullInt64
	if i, j, ok := d.InterceptPair(); ok {
		ia = sql.NullInt64{Int64: int64(i), Valid: true}
		ib = sql.NullInt64{Int64: int64(j), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (name, width, height, min_x, max_x, min_y, max_y, samples, intercept_a, intercept_b, style, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			min_x = excluded.min_x,
			max_x = excluded.max_x,
			min_y = excluded.min_y,
			max_y = excluded.max_y,
			samples = excluded.samples,
			intercept_a = excluded.intercept_a,
			intercept_b = excluded.intercept_b,
			style = excluded.style,
			updated_at = excluded.updated_at
	`, d.Name, d.Viewport.Width, d.Viewport.Height,
		d.Domain.MinX, d.Domain.MaxX, d.Domain.MinY, d.Domain.MaxY,
		d.Samples, ia, ib, string(style), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM equations WHERE document = ?`, d.Name); err != nil {
		return fmt.Errorf("clear equations: %w", err)
	}
	for i, text := range d.Equations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO equations (document, position, text) VALUES (?, ?, ?)`,
			d.Name, i, text); err != nil {
			return fmt.Errorf("save equation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	ggplot.Logger().Debug("sqlite: document saved", "name", d.Name, "equations", len(d.Equations))
	return nil
}

// Load returns the document with the given name.
func (s *Store) Load(ctx context.Context, name string) (*config.Document, error) {
	var (
		d      = &config.Document{Name: name}
		ia, ib sql.NullInt64
		style  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT width, height, min_x, max_x, min_y, max_y, samples, intercept_a, intercept_b, style
		FROM documents WHERE name = ?
	`, name).Scan(&d.Viewport.Width, &d.Viewport.Height,
		&d.Domain.MinX, &d.Domain.MaxX, &d.Domain.MinY, &d.Domain.MaxY,
		&d.Samples, &ia, &ib, &style)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if ia.Valid && ib.Valid {
		d.Intercepts = []int{int(ia.Int64), int(ib.Int64)}
	}
	if style.Valid && style.String != "" {
		if err := json.Unmarshal([]byte(style.String), &d.Style); err != nil {
			return nil, fmt.Errorf("unmarshal style: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM equations WHERE document = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("query equations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan equation: %w", err)
		}
		d.Equations = append(d.Equations, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query equations: %w", err)
	}
	return d, nil
}

// List returns a summary of every document, ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.name, d.updated_at, COUNT(e.position)
		FROM documents d LEFT JOIN equations e ON e.document = d.name
		GROUP BY d.name
		ORDER BY d.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated int64
		)
		if err := rows.Scan(&sum.Name, &updated, &sum.Equations); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		sum.UpdatedAt = time.UnixMilli(updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the named document. It returns an error wrapping
// ErrNotFound if there is none.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	ggplot.Logger().Debug("sqlite: document deleted", "name", name)
	return nil
}

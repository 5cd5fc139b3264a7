// ABOUTME: Translation of SQLite constraint failures into model error kinds
// ABOUTME: Also holds small helpers for nullable columns and IN-clause building
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/outlab/models"
	"github.com/mattn/go-sqlite3"
)

// translateErr maps constraint violations onto ErrConflict, ErrNotFound and
// ErrValidation. Anything else is returned unchanged.
func translateErr(err error, what string) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %s", models.ErrConflict, what)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %s references a missing record", models.ErrNotFound, what)
	case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
		return fmt.Errorf("%w: %s: %v", models.ErrValidation, what, err)
	}
	return err
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%w: %s %v", models.ErrNotFound, kind, id)
}

// nullIfEmpty stores blank strings as NULL.
func nullIfEmpty(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// inClause returns "?, ?, ?" and the matching args for ids.
func inClause(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// pageQuery is a listing statement split into the parts shared by the count and the
// page fetch.
type pageQuery struct {
	columns    string
	from       string
	conditions []string
	args       []interface{}
	orderBy    string
	limit      int
	offset     int
}

// bind appends an argument and returns its positional placeholder.
func (q *pageQuery) bind(value interface{}) string {
	q.args = append(q.args, value)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *pageQuery) where(condition string) {
	q.conditions = append(q.conditions, condition)
}

func (q *pageQuery) whereClause() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

func (q *pageQuery) countSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", q.from, q.whereClause())
}

func (q *pageQuery) selectSQL() string {
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s", q.columns, q.from, q.whereClause(), q.orderBy)
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.limit, q.offset)
	}
	return query
}

// fetchPage runs the count and the page select inside one read-only repeatable-read
// transaction so both observe the same snapshot.
func fetchPage(ctx context.Context, db *sqlx.DB, q *pageQuery, dest interface{}) (int, error) {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return 0, fmt.Errorf("begin listing snapshot: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var total int
	if err := tx.GetContext(ctx, &total, q.countSQL(), q.args...); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	if err := tx.SelectContext(ctx, dest, q.selectSQL(), q.args...); err != nil {
		return 0, fmt.Errorf("select page: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit listing snapshot: %w", err)
	}
	return total, nil
}

// withTx runs fn inside a transaction, rolling back on error.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}

// orderClause expands a sort column that may map to several stored columns.
func orderClause(columns []string, desc bool, tiebreak string) string {
	dir := direction(desc)
	parts := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, tiebreak+" ASC")
	return strings.Join(parts, ", ")
}

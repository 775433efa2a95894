package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isBindParameterMismatch matches pgbouncer reusing an unnamed statement
// prepared by another client with a different parameter count.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "bind message supplies") &&
		strings.Contains(text, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	if strings.Contains(text, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(text, "prepared statement") && strings.Contains(text, "26000")
}

func isResultFormatMismatch(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "bind message has") &&
		strings.Contains(text, "result formats") &&
		strings.Contains(text, "query has")
}

// isPoolerStatementError reports errors caused by a transaction pooler
// swapping the backend between prepare and execute. Retrying once on a fresh
// round trip succeeds.
func isPoolerStatementError(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) || isResultFormatMismatch(err)
}

func selectWithRetry(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.SelectContext(ctx, dest, query, args...)
	if isPoolerStatementError(err) {
		err = db.SelectContext(ctx, dest, query, args...)
	}
	return err
}

func getWithRetry(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.GetContext(ctx, dest, query, args...)
	if isPoolerStatementError(err) {
		err = db.GetContext(ctx, dest, query, args...)
	}
	return err
}

// execAffected runs a write and returns the number of rows it changed.
func execAffected(ctx context.Context, db *sqlx.DB, query string, args ...any) (int, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if isPoolerStatementError(err) {
		res, err = db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

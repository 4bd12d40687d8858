package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so repository calls can
// take part in a caller's transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// pqConstraint returns the violated constraint when err is a postgres error with code.
func pqConstraint(err error, code string) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == code {
		return pqErr.Constraint, true
	}
	return "", false
}

func executor(db *sql.DB, exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return db
}

// toJSONB marshals v for a JSONB column; nil slices are stored as empty arrays.
func toJSONB(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb value: %w", err)
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

// fromJSONB decodes a nullable JSONB column into dst; NULL leaves dst untouched.
func fromJSONB(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode jsonb value: %w", err)
	}
	return nil
}

// nullableJSONB is like toJSONB but stores nil pointers as SQL NULL.
func nullableJSONB[T any](v *T) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb value: %w", err)
	}
	return b, nil
}

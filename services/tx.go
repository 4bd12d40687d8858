package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
)

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

type sqlTransactor struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLTransactor(db *sql.DB, logger *slog.Logger) Transactor {
	return &sqlTransactor{db: db, logger: logger}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (txErr error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				t.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}

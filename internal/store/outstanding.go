package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type OutstandingStore struct {
	db *sqlx.DB
}

const createOutstandingTable = `CREATE TABLE hp_outstanding (
	id BIGSERIAL PRIMARY KEY,
	agreement_no TEXT,
	agreement_date DATE,
	last_paid_date DATE,
	arrears DOUBLE PRECISION,
	months_overdue DOUBLE PRECISION,
	tenor DOUBLE PRECISION,
	months_completed DOUBLE PRECISION,
	installment_progress DOUBLE PRECISION,
	risk_category TEXT
)`

const insertOutstandingLoan = `INSERT INTO hp_outstanding (
	agreement_no,
	agreement_date,
	last_paid_date,
	arrears,
	months_overdue,
	tenor,
	months_completed,
	installment_progress,
	risk_category
) VALUES (
	:agreement_no,
	:agreement_date,
	:last_paid_date,
	:arrears,
	:months_overdue,
	:tenor,
	:months_completed,
	:installment_progress,
	:risk_category
)`

// Replace swaps the hp_outstanding table wholesale for the given rows inside
// one transaction.
func (os *OutstandingStore) Replace(ctx context.Context, loans []OutstandingLoan) error {
	tx, err := os.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS hp_outstanding`); err != nil {
		return fmt.Errorf("failed to drop hp_outstanding: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createOutstandingTable); err != nil {
		return fmt.Errorf("failed to create hp_outstanding: %w", err)
	}

	for i := range loans {
		if _, err := tx.NamedExecContext(ctx, insertOutstandingLoan, &loans[i]); err != nil {
			return fmt.Errorf("failed to insert outstanding loan %s: %w", loans[i].AgreementNo, err)
		}
	}

	return tx.Commit()
}

// Head reads back the first persisted rows for sanity-check logging.
func (os *OutstandingStore) Head(ctx context.Context, limit int) ([]OutstandingLoan, error) {
	var rows []OutstandingLoan
	err := os.db.SelectContext(ctx, &rows,
		`SELECT * FROM hp_outstanding ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read back hp_outstanding: %w", err)
	}
	return rows, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type AgingStore struct {
	db *sqlx.DB
}

const createAgingTable = `CREATE TABLE hp_aging (
	id BIGSERIAL PRIMARY KEY,
	agreement_no TEXT,
	dealer_id TEXT,
	submission_date DATE,
	approval_date DATE,
	loan_amount DOUBLE PRECISION,
	monthly_installment DOUBLE PRECISION,
	arrears_amount DOUBLE PRECISION,
	days_past_due DOUBLE PRECISION,
	gl_balance DOUBLE PRECISION,
	age DOUBLE PRECISION,
	gender TEXT,
	occupation TEXT,
	aging_bucket TEXT
)`

const insertAgingAccount = `INSERT INTO hp_aging (
	agreement_no,
	dealer_id,
	submission_date,
	approval_date,
	loan_amount,
	monthly_installment,
	arrears_amount,
	days_past_due,
	gl_balance,
	age,
	gender,
	occupation,
	aging_bucket
) VALUES (
	:agreement_no,
	:dealer_id,
	:submission_date,
	:approval_date,
	:loan_amount,
	:monthly_installment,
	:arrears_amount,
	:days_past_due,
	:gl_balance,
	:age,
	:gender,
	:occupation,
	:aging_bucket
)`

// Replace swaps the hp_aging table wholesale for the given rows. The drop,
// recreate and inserts run in one transaction so a failed run leaves the
// previous table intact.
func (as *AgingStore) Replace(ctx context.Context, accounts []AgingAccount) error {
	tx, err := as.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS hp_aging`); err != nil {
		return fmt.Errorf("failed to drop hp_aging: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createAgingTable); err != nil {
		return fmt.Errorf("failed to create hp_aging: %w", err)
	}

	for i := range accounts {
		if _, err := tx.NamedExecContext(ctx, insertAgingAccount, &accounts[i]); err != nil {
			return fmt.Errorf("failed to insert aging account %s: %w", accounts[i].AgreementNo, err)
		}
	}

	return tx.Commit()
}

// Head reads back the first persisted rows for sanity-check logging.
func (as *AgingStore) Head(ctx context.Context, limit int) ([]AgingAccount, error) {
	var rows []AgingAccount
	err := as.db.SelectContext(ctx, &rows,
		`SELECT * FROM hp_aging ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read back hp_aging: %w", err)
	}
	return rows, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ReportsStore struct {
	db *sqlx.DB
}

type AgingSummaryRow struct {
	AgingBucket    string  `db:"aging_bucket" json:"aging_bucket"`
	Accounts       int     `db:"accounts" json:"accounts"`
	TotalGLBalance float64 `db:"total_gl_balance" json:"total_gl_balance"`
}

type RiskProfileRow struct {
	RiskCategory string  `db:"risk_category" json:"risk_category"`
	Loans        int     `db:"loans" json:"loans"`
	TotalArrears float64 `db:"total_arrears" json:"total_arrears"`
}

// GetAgingSummary recomputes the per-bucket aggregates from the persisted
// hp_aging table, ordered by the bucket ordinal rather than alphabetically.
func (rs *ReportsStore) GetAgingSummary(ctx context.Context) ([]AgingSummaryRow, error) {
	query := `
	SELECT
		aging_bucket,
		COUNT(id) AS accounts,
		COALESCE(SUM(gl_balance), 0) AS total_gl_balance
	FROM
		hp_aging
	WHERE
		aging_bucket IS NOT NULL
	GROUP BY
		aging_bucket
	ORDER BY
		CASE aging_bucket
			WHEN 'M0' THEN 0
			WHEN 'M1: 1-30 days' THEN 1
			WHEN 'M2: 31-60 days' THEN 2
			WHEN 'M3: 61-90 days' THEN 3
			WHEN '>M3: >90 days' THEN 4
			ELSE 5
		END;
	`

	var rows []AgingSummaryRow
	if err := rs.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query aging summary: %w", err)
	}
	return rows, nil
}

// GetRiskProfile recomputes the per-category aggregates from the persisted
// hp_outstanding table.
func (rs *ReportsStore) GetRiskProfile(ctx context.Context) ([]RiskProfileRow, error) {
	query := `
	SELECT
		risk_category,
		COUNT(id) AS loans,
		COALESCE(SUM(arrears), 0) AS total_arrears
	FROM
		hp_outstanding
	WHERE
		risk_category IS NOT NULL
	GROUP BY
		risk_category
	ORDER BY
		CASE risk_category
			WHEN 'Current' THEN 0
			WHEN '1 Month Overdue' THEN 1
			WHEN '2 Months Overdue' THEN 2
			WHEN '3+ Months Overdue' THEN 3
			ELSE 4
		END;
	`

	var rows []RiskProfileRow
	if err := rs.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query risk profile: %w", err)
	}
	return rows, nil
}

package store

import "database/sql"

// AgingAccount represents one cleaned row of the 'hp_aging' table. Cells
// whose source values failed cleaning are carried as explicit SQL nulls.
type AgingAccount struct {
	ID                 int64           `db:"id"`
	AgreementNo        string          `db:"agreement_no"`
	DealerID           string          `db:"dealer_id"`
	SubmissionDate     sql.NullString  `db:"submission_date"`
	ApprovalDate       sql.NullString  `db:"approval_date"`
	LoanAmount         sql.NullFloat64 `db:"loan_amount"`
	MonthlyInstallment sql.NullFloat64 `db:"monthly_installment"`
	ArrearsAmount      sql.NullFloat64 `db:"arrears_amount"`
	DaysPastDue        sql.NullFloat64 `db:"days_past_due"`
	GLBalance          sql.NullFloat64 `db:"gl_balance"`
	Age                sql.NullFloat64 `db:"age"`
	Gender             string          `db:"gender"`
	Occupation         string          `db:"occupation"`
	AgingBucket        sql.NullString  `db:"aging_bucket"`
}

// OutstandingLoan represents one cleaned row of the 'hp_outstanding' table.
type OutstandingLoan struct {
	ID                  int64           `db:"id"`
	AgreementNo         string          `db:"agreement_no"`
	AgreementDate       sql.NullString  `db:"agreement_date"`
	LastPaidDate        sql.NullString  `db:"last_paid_date"`
	Arrears             sql.NullFloat64 `db:"arrears"`
	MonthsOverdue       sql.NullFloat64 `db:"months_overdue"`
	Tenor               sql.NullFloat64 `db:"tenor"`
	MonthsCompleted     sql.NullFloat64 `db:"months_completed"`
	InstallmentProgress sql.NullFloat64 `db:"installment_progress"`
	RiskCategory        sql.NullString  `db:"risk_category"`
}

package convert

import (
	"database/sql"
	"math"

	"github.com/finbyte/hp-portfolio/internal/store"
	"github.com/go-gota/gota/dataframe"
)

// RowToAgingAccount maps one cleaned HP Aging row to its store model.
// Columns absent from the table produce zero values / SQL nulls.
func RowToAgingAccount(df *dataframe.DataFrame, rowIdx int) store.AgingAccount {
	return store.AgingAccount{
		AgreementNo:        GetStr("agrt no.", rowIdx, df),
		DealerID:           GetStr("dealer id", rowIdx, df),
		SubmissionDate:     GetNullStr("submission date", rowIdx, df),
		ApprovalDate:       GetNullStr("approval date", rowIdx, df),
		LoanAmount:         GetNullFloat("loan amt", rowIdx, df),
		MonthlyInstallment: GetNullFloat("mthly instal", rowIdx, df),
		ArrearsAmount:      GetNullFloat("arrears amt", rowIdx, df),
		DaysPastDue:        GetNullFloat("dpd", rowIdx, df),
		GLBalance:          GetNullFloat("gl bal", rowIdx, df),
		Age:                GetNullFloat("age", rowIdx, df),
		Gender:             GetStr("gender", rowIdx, df),
		Occupation:         GetStr("occupation", rowIdx, df),
		AgingBucket:        GetNullStr("aging bucket", rowIdx, df),
	}
}

// RowToOutstandingLoan maps one cleaned HP OS row to its store model.
func RowToOutstandingLoan(df *dataframe.DataFrame, rowIdx int) store.OutstandingLoan {
	return store.OutstandingLoan{
		AgreementNo:         GetStr("agrt no.", rowIdx, df),
		AgreementDate:       GetNullStr("agrt date", rowIdx, df),
		LastPaidDate:        GetNullStr("last paid date", rowIdx, df),
		Arrears:             GetNullFloat("arrears", rowIdx, df),
		MonthsOverdue:       GetNullFloat("mth due", rowIdx, df),
		Tenor:               GetNullFloat("tenor", rowIdx, df),
		MonthsCompleted:     GetNullFloat("months completed", rowIdx, df),
		InstallmentProgress: GetNullFloat("installment progress", rowIdx, df),
		RiskCategory:        GetNullStr("risk category", rowIdx, df),
	}
}

func GetStr(col string, rowIdx int, df *dataframe.DataFrame) string {
	if df == nil {
		return ""
	}
	if containsString(df.Names(), col) {
		elem := df.Col(col).Elem(rowIdx)
		if elem.IsNA() {
			return ""
		}
		return elem.String()
	}
	return ""
}

func GetNullStr(col string, rowIdx int, df *dataframe.DataFrame) sql.NullString {
	if df == nil || !containsString(df.Names(), col) {
		return sql.NullString{}
	}
	elem := df.Col(col).Elem(rowIdx)
	if elem.IsNA() {
		return sql.NullString{}
	}
	return sql.NullString{String: elem.String(), Valid: true}
}

func GetNullFloat(col string, rowIdx int, df *dataframe.DataFrame) sql.NullFloat64 {
	if df == nil || !containsString(df.Names(), col) {
		return sql.NullFloat64{}
	}
	elem := df.Col(col).Elem(rowIdx)
	if elem.IsNA() {
		return sql.NullFloat64{}
	}
	val := elem.Float()
	if math.IsNaN(val) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: val, Valid: true}
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

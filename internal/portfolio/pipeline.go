package portfolio

import (
	"context"
	"math"
	"time"

	"github.com/finbyte/hp-portfolio/internal/logger"
	"github.com/finbyte/hp-portfolio/internal/portfolio/aggregate"
	"github.com/finbyte/hp-portfolio/internal/portfolio/bucket"
	"github.com/finbyte/hp-portfolio/internal/portfolio/clean"
	"github.com/finbyte/hp-portfolio/internal/portfolio/convert"
	"github.com/finbyte/hp-portfolio/internal/portfolio/export"
	"github.com/finbyte/hp-portfolio/internal/portfolio/loader"
	"github.com/finbyte/hp-portfolio/internal/portfolio/types"
	"github.com/finbyte/hp-portfolio/internal/store"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// headRows is how many persisted rows are read back per table for the
// sanity-check log.
const headRows = 5

// Pipeline runs the batch clean-categorize-aggregate-persist flow for the
// portfolio datasets. Each run is independent and idempotent for identical
// input files.
type Pipeline struct {
	storage   *store.Storage
	appLogger *logger.Logger
}

// RunOptions names the input files, sheet names and sinks of one run.
type RunOptions struct {
	AgingPath        string
	AgingSheet       string
	OutstandingPath  string
	OutstandingSheet string

	// OutputPath is the multi-sheet workbook the cleaned tables are
	// exported to. Empty disables the spreadsheet sink.
	OutputPath string

	// SkipStore disables the relational sink.
	SkipStore bool
}

func NewPipeline(storage *store.Storage, appLogger *logger.Logger) *Pipeline {
	return &Pipeline{storage: storage, appLogger: appLogger}
}

// Run processes both datasets. Input and sink failures are logged and the
// affected dataset or sink is skipped; an error is returned only for
// contract violations (a structurally broken table) where no sensible
// partial result exists.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) error {
	const component = "Pipeline"
	var sheets []export.Sheet

	agingDf, ok, err := p.processAging(ctx, opts.AgingPath, opts.AgingSheet, opts.SkipStore)
	if err != nil {
		return err
	}
	if ok {
		sheets = append(sheets, export.Sheet{Name: types.DatasetNames[types.HPAging], Frame: agingDf})
	}

	osDf, ok, err := p.processOutstanding(ctx, opts.OutstandingPath, opts.OutstandingSheet, opts.SkipStore)
	if err != nil {
		return err
	}
	if ok {
		sheets = append(sheets, export.Sheet{Name: types.DatasetNames[types.HPOutstanding], Frame: osDf})
	}

	if opts.OutputPath != "" && len(sheets) > 0 {
		if err := export.WriteWorkbook(opts.OutputPath, sheets, p.appLogger); err != nil {
			p.appLogger.Error(component, "Workbook export failed: path=%s error=%v", opts.OutputPath, err)
		}
	}

	if len(sheets) == 0 {
		p.appLogger.Warn(component, "No dataset was processed successfully")
	}
	return nil
}

// processAging cleans the HP Aging dataset, attaches aging buckets, logs the
// bucket summary and persists the table. ok is false when the dataset was
// skipped because of an input or sink problem.
func (p *Pipeline) processAging(ctx context.Context, path, sheet string, skipStore bool) (dataframe.DataFrame, bool, error) {
	const component = "HPAging"

	df, err := loader.Load(path, sheet, p.appLogger)
	if err != nil {
		p.appLogger.Error(component, "Dataset skipped: path=%s error=%v", path, err)
		return dataframe.DataFrame{}, false, nil
	}

	df = clean.NormalizeColumns(df)
	df = clean.Apply(df, types.RolesFor(types.HPAging), p.appLogger)

	df, err = bucket.Aging.Apply(df)
	if err != nil {
		return dataframe.DataFrame{}, false, err
	}

	summary, err := aggregate.Summarize(df, bucket.Aging.Target, "gl bal", bucket.Aging.Labels)
	if err != nil {
		return dataframe.DataFrame{}, false, err
	}
	p.appLogger.Info(component, "Aging bucket summary:")
	for _, row := range summary {
		p.appLogger.Info(component, "  %-16s accounts=%d glBalance=%.2f", row.Label, row.Count, row.Sum)
	}

	if !skipStore {
		p.persistAging(ctx, df)
	}

	p.appLogger.Info(component, "Dataset cleaned successfully: rows=%d", df.Nrow())
	return df, true, nil
}

func (p *Pipeline) persistAging(ctx context.Context, df dataframe.DataFrame) {
	const component = "HPAging"

	accounts := make([]store.AgingAccount, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		accounts = append(accounts, convert.RowToAgingAccount(&df, i))
	}

	if err := p.storage.Aging.Replace(ctx, accounts); err != nil {
		p.appLogger.Error(component, "Relational sink failed: table=hp_aging error=%v", err)
		return
	}
	p.appLogger.Info(component, "Table replaced: table=hp_aging rows=%d", len(accounts))

	head, err := p.storage.Aging.Head(ctx, headRows)
	if err != nil {
		p.appLogger.Warn(component, "Read-back verification failed: table=hp_aging error=%v", err)
		return
	}
	for _, row := range head {
		p.appLogger.Info(component, "  hp_aging row: agreement=%s bucket=%s glBalance=%.2f",
			row.AgreementNo, row.AgingBucket.String, row.GLBalance.Float64)
	}
}

// processOutstanding cleans the HP OS dataset, derives loan-progress
// columns, restricts to active loans, attaches risk categories and logs the
// portfolio summary before persisting.
func (p *Pipeline) processOutstanding(ctx context.Context, path, sheet string, skipStore bool) (dataframe.DataFrame, bool, error) {
	const component = "HPOutstanding"

	df, err := loader.Load(path, sheet, p.appLogger)
	if err != nil {
		p.appLogger.Error(component, "Dataset skipped: path=%s error=%v", path, err)
		return dataframe.DataFrame{}, false, nil
	}

	df = clean.NormalizeColumns(df)
	df = clean.Apply(df, types.RolesFor(types.HPOutstanding), p.appLogger)
	df = DeriveLoanProgress(df)
	df = FilterActiveLoans(df)

	df, err = bucket.Risk.Apply(df)
	if err != nil {
		return dataframe.DataFrame{}, false, err
	}

	riskSummary, err := aggregate.SummarizePortfolio(df, "arrears", "installment progress")
	if err != nil {
		return dataframe.DataFrame{}, false, err
	}
	p.appLogger.Info(component, "Portfolio summary: activeLoans=%d totalArrears=%.2f avgArrears=%.2f overdue=%.2f%% avgProgress=%.2f%%",
		riskSummary.TotalActiveLoans, riskSummary.TotalArrears, riskSummary.AverageArrears,
		riskSummary.PercentOverdue, riskSummary.AverageInstallmentProgress)

	riskCounts, err := aggregate.Counts(df, bucket.Risk.Target, bucket.Risk.Labels)
	if err != nil {
		return dataframe.DataFrame{}, false, err
	}
	p.appLogger.Info(component, "Risk category summary:")
	for _, row := range riskCounts {
		p.appLogger.Info(component, "  %-18s loans=%d", row.Label, row.Count)
	}

	progressDf, err := bucket.Progress.Apply(df)
	if err == nil {
		if bands, bandErr := aggregate.Counts(progressDf, bucket.Progress.Target, bucket.Progress.Labels); bandErr == nil {
			p.appLogger.Info(component, "Installment progress summary:")
			for _, row := range bands {
				p.appLogger.Info(component, "  %-8s loans=%d", row.Label, row.Count)
			}
		}
	}

	if !skipStore {
		p.persistOutstanding(ctx, df)
	}

	p.appLogger.Info(component, "Dataset cleaned successfully: rows=%d", df.Nrow())
	return df, true, nil
}

func (p *Pipeline) persistOutstanding(ctx context.Context, df dataframe.DataFrame) {
	const component = "HPOutstanding"

	loans := make([]store.OutstandingLoan, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		loans = append(loans, convert.RowToOutstandingLoan(&df, i))
	}

	if err := p.storage.Outstanding.Replace(ctx, loans); err != nil {
		p.appLogger.Error(component, "Relational sink failed: table=hp_outstanding error=%v", err)
		return
	}
	p.appLogger.Info(component, "Table replaced: table=hp_outstanding rows=%d", len(loans))

	head, err := p.storage.Outstanding.Head(ctx, headRows)
	if err != nil {
		p.appLogger.Warn(component, "Read-back verification failed: table=hp_outstanding error=%v", err)
		return
	}
	for _, row := range head {
		p.appLogger.Info(component, "  hp_outstanding row: agreement=%s risk=%s arrears=%.2f",
			row.AgreementNo, row.RiskCategory.String, row.Arrears.Float64)
	}
}

// DeriveLoanProgress attaches a "months completed" column (calendar months
// between agreement date and last paid date) and an "installment progress"
// ratio column (months completed / tenor, NA when tenor is zero or either
// input is missing).
func DeriveLoanProgress(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Error() != nil || !hasColumn(df, "agrt date") || !hasColumn(df, "last paid date") {
		return df
	}

	agrt := df.Col("agrt date")
	lastPaid := df.Col("last paid date")
	months := make([]float64, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		months[i] = monthsBetween(agrt.Elem(i), lastPaid.Elem(i))
	}
	out := df.Mutate(series.New(months, series.Float, "months completed"))

	if !hasColumn(out, "tenor") {
		return out
	}
	tenor := out.Col("tenor")
	progress := make([]float64, out.Nrow())
	for i := 0; i < out.Nrow(); i++ {
		t := tenor.Elem(i)
		if t.IsNA() || t.Float() == 0 || math.IsNaN(months[i]) {
			progress[i] = math.NaN()
			continue
		}
		progress[i] = months[i] / t.Float()
	}
	return out.Mutate(series.New(progress, series.Float, "installment progress"))
}

// FilterActiveLoans drops rows with negative arrears (overpayment or invalid
// entries). Rows with unknown arrears are dropped by the same comparison.
func FilterActiveLoans(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Error() != nil || !hasColumn(df, "arrears") {
		return df
	}
	return df.Filter(dataframe.F{
		Colname:    "arrears",
		Comparator: series.GreaterEq,
		Comparando: 0.0,
	})
}

func monthsBetween(from, to series.Element) float64 {
	if from.IsNA() || to.IsNA() {
		return math.NaN()
	}
	start, err := time.Parse(clean.CanonicalDateLayout, from.String())
	if err != nil {
		return math.NaN()
	}
	end, err := time.Parse(clean.CanonicalDateLayout, to.String())
	if err != nil {
		return math.NaN()
	}
	return float64((end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()))
}

func hasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}

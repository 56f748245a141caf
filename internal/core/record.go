package core

import "time"

// Sentinel values used in normalized output.
const (
	// DepartmentTotal marks records aggregated across all managers for a date.
	DepartmentTotal = "DEPARTMENT_TOTAL"
	// AllDay is the time-interval label on department-total records.
	AllDay = "ALL_DAY"
)

// TableHeader is the fixed first row of every destination table.
var TableHeader = []any{
	"Date",
	"Manager",
	"Time_Interval",
	"Offers",
	"Total_Day_Offers",
	"Warm_Leads_Given",
	"Offers_From_Warm",
	"Conversion_Rate",
}

// Record is one normalized output row. Numeric fields stay `any` on
// purpose: source cell values (including Conversion_Rate text) are
// passed through to the destination unconverted.
type Record struct {
	Date           string
	Manager        string
	TimeInterval   string
	Offers         any
	TotalDayOffers any
	WarmLeadsGiven any
	OffersFromWarm any
	ConversionRate any
}

// Row returns the record as a Sheets API value row.
func (r Record) Row() []any {
	return []any{
		r.Date,
		r.Manager,
		r.TimeInterval,
		r.Offers,
		r.TotalDayOffers,
		r.WarmLeadsGiven,
		r.OffersFromWarm,
		r.ConversionRate,
	}
}

// Table is a normalized table: the fixed header plus zero or more records.
type Table struct {
	Records []Record
}

// RowCount includes the header row.
func (t Table) RowCount() int { return len(t.Records) + 1 }

// ColCount is the fixed output width.
func (t Table) ColCount() int { return len(TableHeader) }

// Values renders the table as the value matrix written to the destination.
func (t Table) Values() [][]any {
	out := make([][]any, 0, len(t.Records)+1)
	out = append(out, TableHeader)
	for _, r := range t.Records {
		out = append(out, r.Row())
	}
	return out
}

// SyncOutcome describes what happened to one configured sheet during a run.
type SyncOutcome struct {
	Sheet     string
	DBSheet   string
	Outcome   string // "synced", "skipped" or "unchanged"
	Detail    string
	Rows      int
	Cols      int
	StartedAt time.Time
}

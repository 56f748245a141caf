package parser

import (
	"errors"
	"strings"

	"offersync/internal/core"
)

// ErrNoHeader is returned when no time-interval headers exist in the
// scanned rows; the sheet cannot be normalized and must be skipped.
var ErrNoHeader = errors.New("no time interval headers found in the top rows")

// BuildTable normalizes a raw source grid into a long-format table.
//
// Rows below the header are classified by their manager-column cell:
// a DD.MM.YYYY cell starts a new date and, when the row carries data,
// is a department-total row; a blank cell under an established date
// with data is a continuation department-total row; any other
// non-technical text names a manager. Department totals collapse to a
// single ALL_DAY record per row; manager rows fan out to one record
// per time-interval column. Rows without an owner, and any rows seen
// before the first date, are dropped without complaint.
func BuildTable(grid [][]any) (core.Table, error) {
	header := FindHeader(grid)
	if !header.Found {
		return core.Table{}, ErrNoHeader
	}

	var table core.Table
	headerRow := grid[header.RowIdx]
	currentDate := ""

	for i := header.RowIdx + 1; i < len(grid); i++ {
		row := grid[i]

		var cellVal any = ""
		if header.ManagerCol < len(row) {
			cellVal = row[header.ManagerCol]
		}
		isDate := core.IsDateCell(cellVal)
		if isDate {
			currentDate = core.CellString(cellVal)
		}

		rowOwner := ""
		trimmed := strings.TrimSpace(core.CellString(cellVal))
		switch {
		case isDate && hasData(row, header):
			rowOwner = core.DepartmentTotal
		case trimmed == "" && currentDate != "" && hasData(row, header):
			// Continuation row: department aggregates under the same
			// date, with the date cell left blank.
			rowOwner = core.DepartmentTotal
		case trimmed != "" && !isDate && !core.IsTechnicalWord(cellVal):
			rowOwner = trimmed
		}

		if rowOwner == "" || currentDate == "" {
			continue
		}

		for _, timeCol := range header.TimeCols {
			var timeLabel any = ""
			if timeCol < len(headerRow) {
				timeLabel = headerRow[timeCol]
			}
			var offers any = 0
			if timeCol < len(row) && row[timeCol] != nil && row[timeCol] != "" {
				offers = row[timeCol]
			}

			rec := core.Record{
				Date:           currentDate,
				Manager:        rowOwner,
				Offers:         offers,
				TotalDayOffers: valueAt(row, header.TotalCol),
				WarmLeadsGiven: valueAt(row, header.WarmCol),
				OffersFromWarm: valueAt(row, header.WarmOffCol),
				ConversionRate: valueAt(row, header.ConvCol),
			}

			if rowOwner == core.DepartmentTotal {
				// One ALL_DAY record per department-total row, not one
				// per time slot. The loop still visits every time
				// column; only the first one emits.
				if timeCol == header.TimeCols[0] {
					rec.TimeInterval = core.AllDay
					table.Records = append(table.Records, rec)
				}
				continue
			}
			rec.TimeInterval = core.CellString(timeLabel)
			table.Records = append(table.Records, rec)
		}
	}

	return table, nil
}

// hasData reports whether the row carries department aggregates: a
// positive total-offers or warm-leads value. Absent columns count as 0.
func hasData(row []any, h HeaderInfo) bool {
	var total, warm float64
	if h.TotalCol > -1 && h.TotalCol < len(row) {
		total = core.SafeNum(row[h.TotalCol])
	}
	if h.WarmCol > -1 && h.WarmCol < len(row) {
		warm = core.SafeNum(row[h.WarmCol])
	}
	return total > 0 || warm > 0
}

// valueAt is the tolerant aggregate accessor: missing, blank and
// out-of-range cells read as 0, everything else passes through raw.
func valueAt(row []any, idx int) any {
	if idx <= -1 || idx >= len(row) {
		return 0
	}
	if row[idx] == nil || row[idx] == "" {
		return 0
	}
	return row[idx]
}

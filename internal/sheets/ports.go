package sheets

import "context"

// Ports for the spreadsheet backend.
type (
	// ValuesReader reads a raw cell grid from an A1 range. A bare sheet
	// name reads the whole sheet. Trailing empty rows are not returned.
	ValuesReader interface {
		ReadValues(ctx context.Context, spreadsheetID, a1Range string) ([][]any, error)
	}

	// ValuesWriter clears and rewrites destination ranges.
	ValuesWriter interface {
		ClearSheet(ctx context.Context, spreadsheetID, sheetName string) error
		WriteValues(ctx context.Context, spreadsheetID, a1Range string, values [][]any) error
	}

	// SheetCatalog inspects and extends the set of sheets in a spreadsheet.
	SheetCatalog interface {
		SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
		EnsureSheet(ctx context.Context, spreadsheetID, sheetName string) (int64, error)
	}
)

// API is the full backend surface the sync run needs.
type API interface {
	ValuesReader
	ValuesWriter
	SheetCatalog
}

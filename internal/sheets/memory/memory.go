package memory

import (
	"context"
	"fmt"
	"sync"

	sheets "offersync/internal/sheets"
)

// Store is an in-memory spreadsheet backend for tests. It understands
// the small A1 subset the sync run uses: bare sheet names, single
// columns ("A:A", "A2:A") and bounded write ranges ("A1:H42").
type Store struct {
	mu    sync.Mutex
	books map[string]*book

	// ReadErr, when set, fails ReadValues for the given bare sheet name.
	ReadErr map[string]error
}

type book struct {
	order  []string
	sheets map[string][][]any
	nextID int64
}

// Ensure interface conformance
var _ sheets.API = (*Store)(nil)

func New() *Store {
	return &Store{books: map[string]*book{}, ReadErr: map[string]error{}}
}

// SetSheet installs (or replaces) a sheet's grid in the given spreadsheet.
func (s *Store) SetSheet(spreadsheetID, sheetName string, values [][]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(spreadsheetID)
	if _, ok := b.sheets[sheetName]; !ok {
		b.order = append(b.order, sheetName)
	}
	b.sheets[sheetName] = values
}

// Sheet returns the current grid of a sheet, or nil if absent.
func (s *Store) Sheet(spreadsheetID, sheetName string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book(spreadsheetID).sheets[sheetName]
}

func (s *Store) book(id string) *book {
	b, ok := s.books[id]
	if !ok {
		b = &book{sheets: map[string][][]any{}}
		s.books[id] = b
	}
	return b
}

func (s *Store) ReadValues(_ context.Context, spreadsheetID, a1Range string) ([][]any, error) {
	ref, err := sheets.ParseRef(a1Range)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ReadErr[ref.Sheet]; err != nil {
		return nil, err
	}
	grid, ok := s.book(spreadsheetID).sheets[ref.Sheet]
	if !ok {
		// The live API rejects unknown sheets in a range; a bare read of
		// a missing sheet is surfaced the same way here.
		return nil, fmt.Errorf("unable to parse range: %s", a1Range)
	}

	startRow := 1
	if ref.StartRow > 0 {
		startRow = ref.StartRow
	}
	var out [][]any
	for i := startRow - 1; i < len(grid); i++ {
		if ref.EndRow > 0 && i >= ref.EndRow {
			break
		}
		row := grid[i]
		if ref.StartCol > 0 {
			lo := ref.StartCol - 1
			hi := ref.EndCol
			if hi == 0 || hi > len(row) {
				hi = len(row)
			}
			if lo >= len(row) {
				row = nil
			} else {
				row = row[lo:hi]
			}
		}
		out = append(out, row)
	}
	// Trailing empty rows are omitted, like the live API.
	for len(out) > 0 && rowEmpty(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (s *Store) ClearSheet(_ context.Context, spreadsheetID, sheetName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(spreadsheetID)
	if _, ok := b.sheets[sheetName]; !ok {
		return fmt.Errorf("unable to parse range: %s", sheetName)
	}
	b.sheets[sheetName] = nil
	return nil
}

func (s *Store) WriteValues(_ context.Context, spreadsheetID, a1Range string, values [][]any) error {
	ref, err := sheets.ParseRef(a1Range)
	if err != nil {
		return err
	}
	if ref.StartRow != 1 || ref.StartCol != 1 {
		return fmt.Errorf("memory store only writes from A1, got %s", a1Range)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(spreadsheetID)
	if _, ok := b.sheets[ref.Sheet]; !ok {
		return fmt.Errorf("unable to parse range: %s", a1Range)
	}
	copied := make([][]any, len(values))
	for i, row := range values {
		copied[i] = append([]any(nil), row...)
	}
	b.sheets[ref.Sheet] = copied
	return nil
}

func (s *Store) SheetTitles(_ context.Context, spreadsheetID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(spreadsheetID)
	return append([]string(nil), b.order...), nil
}

func (s *Store) EnsureSheet(_ context.Context, spreadsheetID, sheetName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(spreadsheetID)
	if _, ok := b.sheets[sheetName]; ok {
		return 0, nil
	}
	b.nextID++
	b.order = append(b.order, sheetName)
	b.sheets[sheetName] = nil
	return b.nextID, nil
}

func rowEmpty(row []any) bool {
	for _, v := range row {
		if v != nil && v != "" {
			return false
		}
	}
	return true
}

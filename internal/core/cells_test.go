package core

import "testing"

func TestIsDateCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"valid date", "05.01.2024", true},
		{"valid date with spaces", "  05.01.2024  ", true},
		{"iso format", "2024-01-05", false},
		{"single digit day and month", "5.1.2024", false},
		{"two digit year", "05.01.24", false},
		{"trailing text", "05.01.2024 total", false},
		{"number cell", 5.012024, false},
		{"nil cell", nil, false},
		{"empty string", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDateCell(tt.in); got != tt.want {
				t.Errorf("IsDateCell(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsTechnicalWord(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"nil", nil, true},
		{"total label", "Итого", true},
		{"employees label", "сотрудники", true},
		{"date label", "ДАТА", true},
		{"manager label", "менеджер", true},
		{"full name label", "Ф.И.О", true},
		{"offers label", "оферты", true},
		{"single letter s", "S", true},
		{"single letter m", "m", true},
		{"real name", "Иван Петров", false},
		{"latin name", "Ivan", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTechnicalWord(tt.in); got != tt.want {
				t.Errorf("IsTechnicalWord(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafeNum(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"decimal comma", "12,5", 12.5},
		{"decimal dot", "12.5", 12.5},
		{"empty string", "", 0},
		{"spaces", "  ", 0},
		{"junk text", "abc", 0},
		{"nil", nil, 0},
		{"int", 7, 7},
		{"int64", int64(42), 42},
		{"float64", 3.25, 3.25},
		{"integer text", "19", 19},
		{"bool falls back to zero", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeNum(tt.in); got != tt.want {
				t.Errorf("SafeNum(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTableValues(t *testing.T) {
	tbl := Table{Records: []Record{
		{Date: "05.01.2024", Manager: DepartmentTotal, TimeInterval: AllDay, Offers: 3, TotalDayOffers: 5, WarmLeadsGiven: 0, OffersFromWarm: 0, ConversionRate: 0},
	}}
	if tbl.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", tbl.RowCount())
	}
	if tbl.ColCount() != 8 {
		t.Fatalf("ColCount = %d, want 8", tbl.ColCount())
	}
	values := tbl.Values()
	if got := values[0][0]; got != "Date" {
		t.Errorf("header first cell = %v", got)
	}
	if got := values[1][2]; got != AllDay {
		t.Errorf("record time interval = %v, want %v", got, AllDay)
	}
}

package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ColToA1 converts a 1-based column number to its A1 letter form
// (1 -> A, 26 -> Z, 27 -> AA).
func ColToA1(n int) string {
	var s string
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

// TableRange builds the exact-extent write range for a table of the
// given size on the given sheet, e.g. "DB_July!A1:H42".
func TableRange(sheetName string, rows, cols int) string {
	return fmt.Sprintf("%s!A1:%s%d", sheetName, ColToA1(cols), rows)
}

var a1RefRe = regexp.MustCompile(`^([A-Z]+)(\d*)(?::([A-Z]+)(\d*))?$`)

// Ref is a parsed A1 reference within one sheet. Row and column values
// are 1-based; 0 means unbounded on that edge.
type Ref struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseRef splits an A1 range like "Settings!A2:A" into its sheet name
// and bounds. A bare sheet name addresses the whole sheet.
func ParseRef(a1Range string) (Ref, error) {
	sheet := a1Range
	ref := ""
	if i := strings.LastIndex(a1Range, "!"); i >= 0 {
		sheet, ref = a1Range[:i], a1Range[i+1:]
	}
	r := Ref{Sheet: strings.Trim(sheet, "'")}
	if ref == "" {
		return r, nil
	}
	m := a1RefRe.FindStringSubmatch(ref)
	if m == nil {
		return Ref{}, fmt.Errorf("unsupported A1 reference %q", a1Range)
	}
	r.StartCol = colIndex(m[1])
	r.StartRow = atoiOrZero(m[2])
	if m[3] != "" {
		r.EndCol = colIndex(m[3])
		r.EndRow = atoiOrZero(m[4])
	} else {
		r.EndCol = r.StartCol
		r.EndRow = r.StartRow
	}
	return r, nil
}

func colIndex(letters string) int {
	n := 0
	for _, c := range letters {
		n = n*26 + int(c-'A'+1)
	}
	return n
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

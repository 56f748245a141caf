package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var dateCellRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// forbiddenWords are header/footer labels that must never be read as a
// manager name. The set mirrors the source spreadsheets, which are
// maintained in Russian.
var forbiddenWords = map[string]struct{}{
	"итого":      {},
	"сотрудники": {},
	"s":          {},
	"m":          {},
	"дата":       {},
	"менеджер":   {},
	"ф.и.о":      {},
	"оферты":     {},
}

// CellString renders a raw cell value the way it would appear as text.
// nil (absent cell) renders as the empty string.
func CellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsDateCell reports whether v is a text cell holding exactly a
// DD.MM.YYYY date. Non-text cells are never dates, even when the
// spreadsheet renders them as one.
func IsDateCell(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return dateCellRe.MatchString(strings.TrimSpace(s))
}

// IsTechnicalWord reports whether v is blank or one of the fixed label
// words that disqualify a cell from being a manager name.
func IsTechnicalWord(v any) bool {
	s := strings.ToLower(strings.TrimSpace(CellString(v)))
	if s == "" {
		return true
	}
	_, ok := forbiddenWords[s]
	return ok
}

// SafeNum coerces a raw cell value to a number. Empty and absent cells
// are 0, numeric cells pass through, text is parsed after normalizing a
// decimal comma, and anything unparseable is 0. It never fails: the
// downstream totals depend on junk cells silently counting as zero.
func SafeNum(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

package parser

import (
	"strings"

	"offersync/internal/core"
)

// headerScanRows bounds the header search: real sheets keep the header
// near the top, and rows further down routinely contain time-looking
// text (comments, footers) that must not re-trigger detection.
const headerScanRows = 10

// HeaderInfo describes the detected header row of a source sheet.
// Column indices are -1 when the corresponding header was not seen.
type HeaderInfo struct {
	Found      bool
	RowIdx     int
	ManagerCol int
	TimeCols   []int
	TotalCol   int
	WarmCol    int
	WarmOffCol int
	ConvCol    int
}

// headerRule maps a header-cell predicate to the HeaderInfo field it
// populates. Rules are evaluated in order for every cell, so one cell
// may satisfy several rules.
type headerRule struct {
	name  string
	match func(s string) bool
	apply func(h *HeaderInfo, col int)
}

var headerRules = []headerRule{
	{
		name: "time interval",
		match: func(s string) bool {
			return strings.Contains(s, ":") && strings.Contains(s, "-") && strings.ContainsAny(s, "0123456789")
		},
		apply: func(h *HeaderInfo, col int) { h.TimeCols = append(h.TimeCols, col) },
	},
	{
		name:  "total offers",
		match: containsAny("итого оферт"),
		apply: func(h *HeaderInfo, col int) { h.TotalCol = col },
	},
	{
		name:  "warm leads total",
		match: containsAny("zvonobot", "тотал теплых", "теплых лидов"),
		apply: func(h *HeaderInfo, col int) { h.WarmCol = col },
	},
	{
		name:  "offers from warm",
		match: containsAny("офферт из теплых", "из теплых", "от quanta"),
		apply: func(h *HeaderInfo, col int) { h.WarmOffCol = col },
	},
	{
		name:  "conversion",
		match: containsAny("конверси"),
		apply: func(h *HeaderInfo, col int) { h.ConvCol = col },
	},
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// FindHeader scans the top of the grid for the header row: the first
// row within headerScanRows that contains at least one time-interval
// header. The manager column sits immediately left of the first time
// column (clamped to 0).
func FindHeader(grid [][]any) HeaderInfo {
	info := HeaderInfo{
		RowIdx:     -1,
		ManagerCol: -1,
		TotalCol:   -1,
		WarmCol:    -1,
		WarmOffCol: -1,
		ConvCol:    -1,
	}

	limit := headerScanRows
	if len(grid) < limit {
		limit = len(grid)
	}

	for r := 0; r < limit; r++ {
		firstTimeCol := -1
		for c, cell := range grid[r] {
			val := strings.ToLower(core.CellString(cell))
			for _, rule := range headerRules {
				if rule.match(val) {
					rule.apply(&info, c)
					if rule.name == "time interval" && firstTimeCol == -1 {
						firstTimeCol = c
					}
				}
			}
		}
		if firstTimeCol != -1 {
			info.Found = true
			info.RowIdx = r
			info.ManagerCol = firstTimeCol - 1
			if info.ManagerCol < 0 {
				info.ManagerCol = 0
			}
			return info
		}
	}
	return info
}

package reporter

import (
	"fmt"
	"strconv"
	"strings"

	"CryptoPulse/internal/model"
)

// FailureLine is emitted when no asset produced an RSI value this cycle.
const FailureLine = "rsi unavailable"

// FormatRSILine renders one cycle's readings as a single report line of the
// form "rsi brsi 72 ersi 28". Clauses appear in reading order and only for
// assets with a value; values are truncated to integers, not rounded.
func FormatRSILine(snap *model.RSISnapshot) string {
	var b strings.Builder
	b.WriteString("rsi")
	available := false
	for _, r := range snap.Readings {
		if !r.OK {
			continue
		}
		fmt.Fprintf(&b, " %s %d", r.Tag, int(r.Value))
		available = true
	}
	if !available {
		return FailureLine
	}
	return b.String()
}

// FormatPrice renders a snapshot price as the shortest decimal form that
// round-trips, e.g. "67234.51". Integral prices keep a trailing ".0" so the
// line always reads as a float.
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

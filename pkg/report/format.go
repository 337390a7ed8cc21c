package report

import (
	"fmt"
	"strings"
)

// FormatGBP formats a sterling amount the way the summary tiles expect:
// millions as £x.xxM, thousands as £x.xK, smaller amounts to the pound.
func FormatGBP(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("£%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("£%.1fK", v/1_000)
	default:
		return fmt.Sprintf("£%.0f", v)
	}
}

// FormatCount formats a count with thousands separators. Negative values
// keep their sign outside the grouping.
func FormatCount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// FormatPct formats a percentage with the given number of decimals.
func FormatPct(v float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, v)
}

// FormatSignedPct formats a percentage change with an explicit sign.
func FormatSignedPct(v float64, decimals int) string {
	return fmt.Sprintf("%+.*f%%", decimals, v)
}

package card

import (
	"strconv"
	"strings"
	"time"
)

// FormatNumber abbreviates n: values below 1000 are printed verbatim, larger
// values get a K or M suffix with one truncated decimal ("1.2K", "2.3M").
// A zero decimal is dropped ("1K").
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return compact(n, 1_000_000, "M")
	case n >= 1_000:
		return compact(n, 1_000, "K")
	default:
		return strconv.Itoa(n)
	}
}

func compact(n, unit int, suffix string) string {
	tenths := n / (unit / 10)
	whole, frac := tenths/10, tenths%10
	if frac == 0 {
		return strconv.Itoa(whole) + suffix
	}
	return strconv.Itoa(whole) + "." + strconv.Itoa(frac) + suffix
}

const isoDate = "2006-01-02"

// parseDate accepts YYYY-MM-DD or anything with that prefix (RFC 3339).
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(isoDate) {
		s = s[:len(isoDate)]
	}
	t, err := time.Parse(isoDate, s)
	return t, err == nil
}

func formatDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return t.Format("Jan 2")
}

// formatRange renders "Mon D - Mon D". A missing end reads "Present"; a
// missing start yields the empty string.
func formatRange(start, end string) string {
	s := formatDate(start)
	if s == "" {
		return ""
	}
	e := formatDate(end)
	if e == "" {
		e = "Present"
	}
	return s + " - " + e
}

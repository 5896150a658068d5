package engine

import (
	"errors"
	"strconv"
	"strings"
)

// amountPresets are the one-tap amounts offered before free-text entry,
// in currency units.
var amountPresets = []int64{10000, 25000, 50000, 100000, 250000, 500000, 1000000}

var errBadAmount = errors.New("amount must be a positive integer")

// parseAmount turns user-entered text into a positive amount. Surrounding
// whitespace and the usual thousand separators (spaces, NBSP, commas,
// apostrophes) are stripped before parsing; anything non-numeric or
// non-positive is rejected.
func parseAmount(raw string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ', ',', '\'':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return 0, errBadAmount
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n <= 0 {
		return 0, errBadAmount
	}
	return n, nil
}

// formatAmount renders an amount with space-grouped thousands, the way
// the confirmation card shows money.
func formatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

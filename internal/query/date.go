package query

import (
	"fmt"
	"strings"
	"time"
)

// Date expressions accepted by the search grammar:
//
//	2023-01-02           literal date
//	today                relative keyword (also yesterday, tomorrow)
//	2023-01-01..2023-06-30   bounded range
//	*..2023-06-30        open range, * means unbounded on that side
//	yesterday..today     keyword range
//
// A range may not mix a relative keyword with a literal date — the
// server resolves keywords at query time, so the ordering of such a
// range is ambiguous. That mix is rejected here, before the query is
// ever sent.

const dateLayout = "2006-01-02"

var relativeKeywords = map[string]bool{
	"today":     true,
	"yesterday": true,
	"tomorrow":  true,
}

type dateTerm int

const (
	termOpen dateTerm = iota // "*"
	termKeyword
	termLiteral
)

func classifyDateTerm(s string) (dateTerm, error) {
	switch {
	case s == "*":
		return termOpen, nil
	case relativeKeywords[s]:
		return termKeyword, nil
	default:
		if _, err := time.Parse(dateLayout, s); err != nil {
			return 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD, today, yesterday, or tomorrow", s)
		}
		return termLiteral, nil
	}
}

// parseDateExpr validates a date expression and returns it unchanged.
// Dates never contain whitespace, so no quoting is applied downstream.
func parseDateExpr(raw string) (string, error) {
	expr := strings.TrimSpace(raw)
	if expr == "" {
		return "", fmt.Errorf("empty date expression")
	}

	before, after, isRange := strings.Cut(expr, "..")
	if !isRange {
		term, err := classifyDateTerm(expr)
		if err != nil {
			return "", err
		}
		if term == termOpen {
			return "", fmt.Errorf("invalid date %q: * is only valid inside a range", expr)
		}
		return expr, nil
	}

	if before == "" || after == "" {
		return "", fmt.Errorf("invalid date range %q: both sides must be set (use * for unbounded)", expr)
	}

	start, err := classifyDateTerm(before)
	if err != nil {
		return "", err
	}
	end, err := classifyDateTerm(after)
	if err != nil {
		return "", err
	}

	if start == termOpen && end == termOpen {
		return "", fmt.Errorf("invalid date range %q: at least one side must be bounded", expr)
	}

	// A keyword resolves server-side relative to "now"; pairing it with
	// a fixed date makes the range's ordering ambiguous.
	hasKeyword := start == termKeyword || end == termKeyword
	hasLiteral := start == termLiteral || end == termLiteral
	if hasKeyword && hasLiteral {
		return "", fmt.Errorf("invalid date range %q: cannot mix a relative keyword with a literal date", expr)
	}

	return expr, nil
}

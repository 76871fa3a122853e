package app

import (
	"strings"
	"time"
)

const (
	// InputDateLayout is the ISO calendar date accepted in requests.
	InputDateLayout = time.DateOnly
	// OutputDateLayout renders dates like "Mon Jan 01 1990".
	OutputDateLayout = "Mon Jan 02 2006"
)

func parseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(InputDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

// FormatDate renders a stored calendar day for responses.
func FormatDate(t time.Time) string {
	return t.UTC().Format(OutputDateLayout)
}

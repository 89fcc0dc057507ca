package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgonek/content-indexer/internal/fs"
)

// normalizedLayout matches how JavaScript serializes a Date to JSON, which
// existing content sorts and compares against.
const normalizedLayout = "2006-01-02T15:04:05.000Z"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dateLayouts = []string{
	normalizedLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate renders a date field as sortable text. Date values become
// UTC timestamps in normalizedLayout; anything else keeps its text with
// double quotes removed.
func NormalizeDate(v fs.Value) string {
	if t, ok := v.Time(); ok {
		return t.UTC().Format(normalizedLayout)
	}
	return strings.ReplaceAll(v.Text(), `"`, "")
}

// FormatDate renders t as "<Month> <day>, <year>", e.g. "March 1, 2021".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", monthNames[t.Month()-1], t.Day(), t.Year())
}

// ParseDate reads a normalized date back into a time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

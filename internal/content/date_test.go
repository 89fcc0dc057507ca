package content

import (
	"testing"
	"time"

	"github.com/rgonek/content-indexer/internal/fs"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{in: time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), want: "March 1, 2021"},
		{in: time.Date(1999, time.December, 31, 23, 59, 0, 0, time.UTC), want: "December 31, 1999"},
		{in: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), want: "January 15, 2024"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatDate(tc.in); got != tc.want {
				t.Fatalf("FormatDate() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	offset := time.FixedZone("plus2", 2*60*60)
	tests := []struct {
		name string
		in   fs.Value
		want string
	}{
		{name: "date value", in: fs.DateValue(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)), want: "2021-01-01T00:00:00.000Z"},
		{name: "date with offset", in: fs.DateValue(time.Date(2021, 1, 1, 1, 30, 0, 0, offset)), want: "2020-12-31T23:30:00.000Z"},
		{name: "plain string", in: fs.StringValue("2021-01-01"), want: "2021-01-01"},
		{name: "quoted string", in: fs.StringValue(`"2021-01-01"`), want: "2021-01-01"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeDate(tc.in); got != tc.want {
				t.Fatalf("NormalizeDate() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseDate_RoundTripsNormalizedForms(t *testing.T) {
	for _, in := range []string{"2021-03-01T00:00:00.000Z", "2021-03-01T00:00:00Z", "2021-03-01", "2021-03-01 00:00:00"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q) unexpected error: %v", in, err)
		}
		if FormatDate(got) != "March 1, 2021" {
			t.Fatalf("FormatDate(ParseDate(%q)) = %q, want March 1, 2021", in, FormatDate(got))
		}
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatal("ParseDate(yesterday) expected error")
	}
}

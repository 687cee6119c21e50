package clf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var monthAbbr = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Wildcard components of the day/month/year prefix of a timestamp field.
var anyDateComponents = [3]string{
	`[0-3]?[0-9]`,
	"(" + strings.Join(monthAbbr, "|") + ")",
	`[1-9][0-9]{3}`,
}

// DateFilter tests a record's timestamp field against year/month/day
// constraints. Constrained components match literally, unconstrained ones
// match the wildcard date grammar.
type DateFilter struct {
	anyDate *regexp.Regexp
	reqDate *regexp.Regexp
}

// NewDateFilter validates the supplied constraints and builds a filter.
// Each constraint is independently optional; if all are empty the filter is
// inactive and NewDateFilter returns nil.
//
// Year must be in [1995, 9999] (the Apache server was first released in
// 1995), month in [1, 12] or a case-insensitive three-letter abbreviation,
// day in [1, 31]. A single-digit day also matches its zero-padded form.
func NewDateFilter(year, month, day string) (*DateFilter, error) {
	if year == "" && month == "" && day == "" {
		return nil, nil
	}

	components := anyDateComponents

	if year != "" {
		y, err := parseInRange(year, 1995, 9999)
		if err != nil {
			return nil, fmt.Errorf("invalid specification of year")
		}
		components[2] = strconv.Itoa(y)
	}

	if month != "" {
		m := capitalize(month)
		if !containsString(monthAbbr, m) {
			n, err := parseInRange(month, 1, 12)
			if err != nil {
				return nil, fmt.Errorf("invalid specification of month")
			}
			m = monthAbbr[n-1]
		}
		components[1] = m
	}

	if day != "" {
		d, err := parseInRange(day, 1, 31)
		if err != nil {
			return nil, fmt.Errorf("invalid specification of day")
		}
		dayPattern := strconv.Itoa(d)
		if len(dayPattern) == 1 {
			dayPattern = "0?" + dayPattern
		}
		components[0] = dayPattern
	}

	const tail = `[ ,:-]`
	anyDate := regexp.MustCompile(`^` + strings.Join(anyDateComponents[:], "/") + tail)
	reqDate := regexp.MustCompile(`^` + strings.Join(components[:], "/") + tail)

	return &DateFilter{anyDate: anyDate, reqDate: reqDate}, nil
}

// Match tests the timestamp field of one record. keep reports whether the
// record passes the constraints; parseable is false only when the timestamp
// fails even the fully-wildcarded date grammar.
func (f *DateFilter) Match(timestamp string) (keep, parseable bool) {
	if f.reqDate.MatchString(timestamp) {
		return true, true
	}
	return false, f.anyDate.MatchString(timestamp)
}

func parseInRange(s string, minVal, maxVal int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < minVal || n > maxVal {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", n, minVal, maxVal)
	}
	return n, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

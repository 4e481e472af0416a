package todo

import (
	"regexp"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// looseDate accepts single-digit months and days, e.g. 2024-1-5.
var looseDate = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

// ParseDueDate parses a calendar date in YYYY-MM-DD form.
func ParseDueDate(value string) (datatypes.Date, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil && t.Year() >= 1 {
		return datatypes.Date(t), nil
	}

	parts := looseDate.FindStringSubmatch(value)
	if parts == nil {
		return datatypes.Date{}, invalidf("due_date",
			"“%s” value has an invalid date format. It must be in YYYY-MM-DD format.", value)
	}

	year, _ := strconv.Atoi(parts[1])
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[3])
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if year < 1 || t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return datatypes.Date{}, invalidf("due_date",
			"“%s” value has the correct format (YYYY-MM-DD) but it is an invalid date.", value)
	}
	return datatypes.Date(t), nil
}

package handler

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	historydomain "budgeteer-go/internal/domain/history"
	"budgeteer-go/internal/domain/validation"
)

const dateLayout = "2006-01-02"

type dateRange struct {
	From time.Time
	To   time.Time
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// parseDateRange reads the inclusive from/to pair and enforces the maximum
// span in days.
func parseDateRange(query url.Values, maxDays int) (dateRange, error) {
	errs := validation.Errors{}

	from, ok := parseDate(query.Get("from"))
	if !ok {
		errs.Add("from", "must be a YYYY-MM-DD date")
	}
	to, ok := parseDate(query.Get("to"))
	if !ok {
		errs.Add("to", "must be a YYYY-MM-DD date")
	}
	if err := errs.Err(); err != nil {
		return dateRange{}, err
	}

	if to.Before(from) {
		errs.Add("to", "must not be before from")
		return dateRange{}, errs
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxDays {
		errs.Add("to", "range must not exceed "+strconv.Itoa(maxDays)+" days")
		return dateRange{}, errs
	}

	return dateRange{From: from, To: to}, nil
}

// parseHistoryQuery reads timeFrame, month (default 0) and year. Range
// checks are left to the history service.
func parseHistoryQuery(query url.Values) (historydomain.Query, error) {
	errs := validation.Errors{}
	q := historydomain.Query{
		TimeFrame: historydomain.TimeFrame(strings.TrimSpace(query.Get("timeFrame"))),
	}

	month, err := parseIntParam(query.Get("month"), 0)
	if err != nil {
		errs.Add("month", "must be an integer")
	}
	q.Month = month

	year, err := parseIntParam(query.Get("year"), 0)
	if err != nil {
		errs.Add("year", "must be an integer")
	}
	if strings.TrimSpace(query.Get("year")) == "" {
		errs.Add("year", "is required")
	}
	q.Year = year

	if err := errs.Err(); err != nil {
		return historydomain.Query{}, err
	}
	return q, q.Validate()
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

const maxBodyBytes = 1 << 20

// decodeBody strictly decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return core.Validationf("invalid request body: %v", err)
	}
	return nil
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, core.Validationf("date is required")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, core.Validationf("invalid date %q: use YYYY-MM-DD", value)
}

// parseOptionalDate is parseDate for partial-update fields; nil means the
// field was absent.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// windowFromQuery derives an aggregation window from query parameters.
// Explicit from/to bounds win; otherwise {period, year, month} derive a
// calendar month or year, defaulting to the current one; with neither, the
// window is unbounded.
func windowFromQuery(query url.Values) (core.Window, error) {
	from := strings.TrimSpace(query.Get("from"))
	to := strings.TrimSpace(query.Get("to"))
	if from != "" || to != "" {
		var w core.Window
		if from != "" {
			t, err := parseDate(from)
			if err != nil {
				return core.Window{}, err
			}
			w.Start = t
		}
		if to != "" {
			t, err := parseDate(to)
			if err != nil {
				return core.Window{}, err
			}
			// The upper bound is exclusive; a bare "to" date means
			// "through the end of that day".
			w.End = t.AddDate(0, 0, 1)
		}
		if !w.Start.IsZero() && !w.End.IsZero() && !w.End.After(w.Start) {
			return core.Window{}, core.Validationf("date range is empty")
		}
		return w, nil
	}

	period := core.Period(strings.TrimSpace(query.Get("period")))
	if period == "" {
		return core.Window{}, nil
	}

	now := time.Now().UTC()
	year, err := intParam(query, "year", now.Year())
	if err != nil {
		return core.Window{}, err
	}
	month, err := intParam(query, "month", 0)
	if err != nil {
		return core.Window{}, err
	}
	if month != 0 && (month < 1 || month > 12) {
		return core.Window{}, core.Validationf("invalid month %d", month)
	}
	if period == core.Monthly && month == 0 {
		month = int(now.Month())
	}

	switch period {
	case core.Monthly, core.Yearly:
		return core.WindowFor(period, year, time.Month(month)), nil
	default:
		return core.Window{}, core.Validationf("invalid period %q", period)
	}
}

func intParam(query url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, core.Validationf("invalid %s %q", key, v)
	}
	return n, nil
}

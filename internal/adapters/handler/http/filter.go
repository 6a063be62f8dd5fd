package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

// parseFilter reads the dashboard filter from the query string. Every parameter is optional.
func parseFilter(c *gin.Context) (domain.DashboardFilter, error) {
	var f domain.DashboardFilter
	var err error

	if f.From, err = queryDay(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryDay(c, "to"); err != nil {
		return f, err
	}
	if f.SelectedDay, err = queryDay(c, "day"); err != nil {
		return f, err
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, fmt.Errorf("%w: from cannot be after to", errInvalidQuery)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"min_duration", &f.MinDuration},
		{"hardness_min", &f.HardnessMin},
		{"month", &f.Month},
		{"year", &f.Year},
	}
	for _, p := range ints {
		if *p.dst, err = queryInt(c, p.name); err != nil {
			return f, err
		}
	}
	if strings.TrimSpace(c.Query("hardness_max")) != "" {
		hMax, err := queryInt(c, "hardness_max")
		if err != nil {
			return f, err
		}
		f.HardnessMax = &hMax
	}
	if f.Month < 0 || f.Month > 12 {
		return f, fmt.Errorf("%w: month must be between 1 and 12", errInvalidQuery)
	}

	for _, raw := range c.QueryArray("title") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Titles = append(f.Titles, t)
			}
		}
	}
	return f, nil
}

func queryDay(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	d, ok := domain.ParseDay(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s=%q is not a date", errInvalidQuery, name, raw)
	}
	return d, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a non-negative number", errInvalidQuery, name, raw)
	}
	return n, nil
}

package series

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/availlant/channelpulse/internal/model"
)

const dayLayout = "2006-01-02"

// FilterDaily returns the subsequence of a date-sorted series whose dates
// fall inside the window described by a compact filter expression:
//
//	7d|28d|90d|365d      last N days ending at the latest date in the series
//	all                  the entire series
//	year:YYYY            Jan 1 through Dec 31 of that year
//	month:YYYY-MM        first through last calendar day of that month
//	range:START..END     inclusive literal bounds, both calendar days
//
// Relative windows track the data, not the wall clock: the window ends at
// the latest date present in the series. Unknown or malformed expressions
// fail open and return the unfiltered series.
func FilterDaily(daily []model.DailyMetric, filter string) []model.DailyMetric {
	switch filter {
	case "all":
		return daily
	case "7d":
		return lastNDays(daily, 7)
	case "28d":
		return lastNDays(daily, 28)
	case "90d":
		return lastNDays(daily, 90)
	case "365d":
		return lastNDays(daily, 365)
	}

	switch {
	case strings.HasPrefix(filter, "year:"):
		year, err := strconv.Atoi(strings.TrimPrefix(filter, "year:"))
		if err != nil {
			return daily
		}
		start := fmt.Sprintf("%04d-01-01", year)
		end := fmt.Sprintf("%04d-12-31", year)
		return between(daily, start, end)

	case strings.HasPrefix(filter, "month:"):
		ym := strings.TrimPrefix(filter, "month:")
		parts := strings.SplitN(ym, "-", 2)
		if len(parts) != 2 {
			return daily
		}
		year, errY := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		if errY != nil || errM != nil || month < 1 || month > 12 {
			return daily
		}
		// Day 0 of the next month is the last day of this one; time.Date
		// normalizes it, which keeps leap years right.
		lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
		start := fmt.Sprintf("%04d-%02d-01", year, month)
		end := fmt.Sprintf("%04d-%02d-%02d", year, month, lastDay)
		return between(daily, start, end)

	case strings.HasPrefix(filter, "range:"):
		payload := strings.TrimPrefix(filter, "range:")
		start, end, ok := strings.Cut(payload, "..")
		if !ok || start == "" || end == "" {
			return daily
		}
		return between(daily, start, end)
	}

	return daily
}

// lastNDays clips to the n-day window whose last day is the latest date
// present in the series.
func lastNDays(daily []model.DailyMetric, n int) []model.DailyMetric {
	if len(daily) == 0 {
		return daily
	}
	endStr := daily[len(daily)-1].Date
	end, err := time.Parse(dayLayout, endStr)
	if err != nil {
		return daily
	}
	startStr := end.AddDate(0, 0, -(n - 1)).Format(dayLayout)
	return between(daily, startStr, endStr)
}

func between(daily []model.DailyMetric, start, end string) []model.DailyMetric {
	out := make([]model.DailyMetric, 0, len(daily))
	for _, d := range daily {
		if d.Date >= start && d.Date <= end {
			out = append(out, d)
		}
	}
	return out
}

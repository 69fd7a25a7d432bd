package ingest

import (
	"math"
	"strings"

	"github.com/availlant/channelpulse/internal/model"
)

// Column fallback chains per kind. Field names vary across export tools, so
// each extractor tries exact names first and falls back to substring scans.
var (
	viewsDateColumns   = []string{"date", "day"}
	viewsColumns       = []string{"views", "view", "views (estimated)", "estimated views", "views_estimated"}
	watchMinuteColumns = []string{"watch_time_minutes", "watch time minutes", "watch_time", "watch time (minutes)"}
	subsNetColumns     = []string{"subs_net", "subs", "subscribers"}
	subsGainedColumns  = []string{"subscribers gained", "subs gained"}
	subsLostColumns    = []string{"subscribers lost", "subs lost"}
	revenueColumns     = []string{"revenue_usd", "revenue", "estimated revenue (usd)", "your estimated revenue (usd)"}
)

// metricsByDate folds rows from the four files into one record per date.
type metricsByDate map[string]*model.DailyMetric

func (m metricsByDate) upsert(date string) *model.DailyMetric {
	if d, ok := m[date]; ok {
		return d
	}
	d := &model.DailyMetric{Date: date}
	m[date] = d
	return d
}

// applyViews folds a views file's rows into the per-date map. Rows without a
// normalizable date are dropped.
func applyViews(rows []Row, byDate metricsByDate) {
	for _, r := range rows {
		date, ok := NormalizeDate(firstNonEmpty(r, viewsDateColumns...))
		if !ok {
			continue
		}
		byDate.upsert(date).Views = clampNonNeg(ParseNumber(firstNonEmpty(r, viewsColumns...)))
	}
}

// applyWatchTime prefers explicit minute-denominated columns; when none is
// present it converts any watch-hours column to minutes. Minutes win over
// hours when both exist.
func applyWatchTime(rows []Row, byDate metricsByDate) {
	for _, r := range rows {
		date, ok := NormalizeDate(r["date"])
		if !ok {
			continue
		}

		var minutes float64
		if hasAny(r, watchMinuteColumns...) {
			minutes = ParseNumber(firstNonEmpty(r, watchMinuteColumns...))
		} else {
			for _, k := range sortedKeys(r) {
				if strings.Contains(k, "watch") && strings.Contains(k, "hour") {
					minutes = ParseNumber(r[k]) * 60
					break
				}
			}
		}
		byDate.upsert(date).WatchTimeMinutes = clampNonNeg(minutes)
	}
}

// applySubscribers prefers a net column; a zero or absent net falls back to
// gained minus lost. Both sources absent means net 0.
func applySubscribers(rows []Row, byDate metricsByDate) {
	for _, r := range rows {
		date, ok := NormalizeDate(r["date"])
		if !ok {
			continue
		}

		net := ParseNumber(firstNonEmpty(r, subsNetColumns...))
		if net == 0 {
			gained := ParseNumber(firstNonEmpty(r, subsGainedColumns...))
			lost := ParseNumber(firstNonEmpty(r, subsLostColumns...))
			if gained != 0 || lost != 0 {
				net = gained - lost
			}
		}
		byDate.upsert(date).SubsNet = int(math.Round(net))
	}
}

// applyRevenue prefers exact revenue columns, then any header containing
// "revenue".
func applyRevenue(rows []Row, byDate metricsByDate) {
	for _, r := range rows {
		date, ok := NormalizeDate(r["date"])
		if !ok {
			continue
		}

		var revenue float64
		if exact := firstNonEmpty(r, revenueColumns...); exact != "" {
			revenue = ParseNumber(exact)
		} else {
			for _, k := range sortedKeys(r) {
				if strings.Contains(k, "revenue") {
					revenue = ParseNumber(r[k])
					break
				}
			}
		}
		byDate.upsert(date).RevenueUsd = clampNonNeg(revenue)
	}
}

func firstNonEmpty(r Row, keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}

func hasAny(r Row, keys ...string) bool {
	for _, k := range keys {
		if _, ok := r[k]; ok {
			return true
		}
	}
	return false
}

func clampNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

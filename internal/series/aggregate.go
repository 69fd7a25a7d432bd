package series

import (
	"sort"

	"github.com/availlant/channelpulse/internal/model"
)

// Combine sums all four metric fields across channels for every date present
// in any channel. This is a full outer join on date: a channel without data
// for a date contributes 0 to that date. No date is fabricated that is
// absent from every input.
func Combine(channels []model.ChannelSeries) []model.DailyMetric {
	byDate := make(map[string]model.DailyMetric)
	for _, ch := range channels {
		for _, d := range ch.Daily {
			cur := byDate[d.Date]
			cur.Date = d.Date
			cur.Views += d.Views
			cur.WatchTimeMinutes += d.WatchTimeMinutes
			cur.SubsNet += d.SubsNet
			cur.RevenueUsd += d.RevenueUsd
			byDate[d.Date] = cur
		}
	}

	out := make([]model.DailyMetric, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// WithRPM annotates each day of a combined series with its per-day RPM.
func WithRPM(daily []model.DailyMetric) []model.CombinedDaily {
	out := make([]model.CombinedDaily, 0, len(daily))
	for _, d := range daily {
		out = append(out, model.CombinedDaily{
			DailyMetric: d,
			RPM:         RPM(d.RevenueUsd, d.Views),
		})
	}
	return out
}

// Sum reduces a daily series into period totals.
func Sum(daily []model.DailyMetric) model.Totals {
	var t model.Totals
	for _, d := range daily {
		t.Views += d.Views
		t.WatchTimeMinutes += d.WatchTimeMinutes
		t.SubsNet += d.SubsNet
		t.RevenueUsd += d.RevenueUsd
	}
	return t
}

// RPM is revenue per thousand views. Zero views yields 0 rather than an
// error or a division by zero.
func RPM(revenueUsd, views float64) float64 {
	if views == 0 {
		return 0
	}
	return revenueUsd / (views / 1000)
}

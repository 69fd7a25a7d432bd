// Package series holds the pure time-series operations: merging uploads,
// cross-channel aggregation, and date-range filtering. Nothing here touches
// I/O or retains state; callers own persistence.
package series

import (
	"sort"

	"github.com/availlant/channelpulse/internal/model"
)

// Merge combines a freshly ingested channel set into the previously known
// one. New channels are inserted wholesale. For existing channels every
// incoming date overwrites the same date in the previous series: last write
// wins per date, replacing the whole DailyMetric, not individual fields.
// Channels absent from incoming are left untouched. The result is a new
// value sorted by channel name; neither input is mutated.
func Merge(previous, incoming []model.ChannelSeries) []model.ChannelSeries {
	byName := make(map[string]model.ChannelSeries, len(previous)+len(incoming))
	for _, ch := range previous {
		byName[ch.ChannelName] = ch
	}

	for _, inc := range incoming {
		prev, ok := byName[inc.ChannelName]
		if !ok {
			byName[inc.ChannelName] = inc
			continue
		}

		byDate := make(map[string]model.DailyMetric, len(prev.Daily)+len(inc.Daily))
		for _, d := range prev.Daily {
			byDate[d.Date] = d
		}
		for _, d := range inc.Daily {
			byDate[d.Date] = d
		}

		merged := make([]model.DailyMetric, 0, len(byDate))
		for _, d := range byDate {
			merged = append(merged, d)
		}
		sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })

		byName[inc.ChannelName] = model.ChannelSeries{ChannelName: inc.ChannelName, Daily: merged}
	}

	out := make([]model.ChannelSeries, 0, len(byName))
	for _, ch := range byName {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChannelName < out[j].ChannelName })
	return out
}

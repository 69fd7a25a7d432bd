package ingest

import (
	"fmt"
	"sort"

	"github.com/availlant/channelpulse/internal/model"
)

// AssembleChannel resolves a folder's files and folds their rows into one
// ChannelSeries, sorted ascending by date. The folder name becomes the
// channel name.
func AssembleChannel(folderName string, files []model.File) (model.ChannelSeries, []string, error) {
	assigned, warnings, err := ResolveFolder(folderName, files)
	if err != nil {
		return model.ChannelSeries{}, warnings, err
	}

	byDate := make(metricsByDate)
	applyViews(ParseRows(assigned[KindViews].Data), byDate)
	applyWatchTime(ParseRows(assigned[KindWatchTime].Data), byDate)
	applySubscribers(ParseRows(assigned[KindSubscribers].Data), byDate)
	applyRevenue(ParseRows(assigned[KindRevenue].Data), byDate)

	daily := make([]model.DailyMetric, 0, len(byDate))
	for _, m := range byDate {
		daily = append(daily, *m)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	return model.ChannelSeries{ChannelName: folderName, Daily: daily}, warnings, nil
}

// IngestBatch processes one upload batch of already-grouped folders. Folders
// are independent: a folder missing required files is collected as an error
// and does not abort its siblings. Warnings are prefixed with their folder
// name. Folders are processed in sorted order so results are deterministic.
func IngestBatch(folders map[string][]model.File) model.UploadResult {
	names := make([]string, 0, len(folders))
	for name := range folders {
		names = append(names, name)
	}
	sort.Strings(names)

	result := model.UploadResult{
		Errors:   []string{},
		Warnings: []string{},
	}
	for _, name := range names {
		channel, warnings, err := AssembleChannel(name, folders[name])
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", name, w))
		}
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Channels = append(result.Channels, channel)
	}
	return result
}

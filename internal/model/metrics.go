package model

// DailyMetric is the canonical per-day record for one channel. Date is a
// YYYY-MM-DD calendar day; lexical order on Date is chronological order.
type DailyMetric struct {
	Date             string  `json:"date"`
	Views            float64 `json:"views"`
	WatchTimeMinutes float64 `json:"watchTimeMinutes"`
	SubsNet          int     `json:"subsNet"`
	RevenueUsd       float64 `json:"revenueUsd"`
}

// ChannelSeries is one channel's time series, sorted ascending by date with
// at most one entry per date.
type ChannelSeries struct {
	ChannelName string        `json:"channelName"`
	Daily       []DailyMetric `json:"daily"`
}

// Totals is the sum-reduction of a daily series.
type Totals struct {
	Views            float64 `json:"views"`
	WatchTimeMinutes float64 `json:"watchTimeMinutes"`
	SubsNet          int     `json:"subsNet"`
	RevenueUsd       float64 `json:"revenueUsd"`
}

// CombinedDaily is a cross-channel aggregate day annotated with its RPM.
type CombinedDaily struct {
	DailyMetric
	RPM float64 `json:"rpm"`
}

// ChannelListResponse is the API response for GET /api/channels.
type ChannelListResponse struct {
	Channels []ChannelSeries `json:"channels"`
}

// SummaryResponse is the API response for the combined, date-filtered view.
type SummaryResponse struct {
	Range  string          `json:"range"`
	Daily  []CombinedDaily `json:"daily"`
	Totals Totals          `json:"totals"`
	RPM    float64         `json:"rpm"`
}

// StatsResponse is the API response for per-user account statistics.
type StatsResponse struct {
	TotalChannels int     `json:"totalChannels"`
	TotalDays     int     `json:"totalDays"`
	FirstDate     string  `json:"firstDate,omitempty"`
	LastDate      string  `json:"lastDate,omitempty"`
	Totals        Totals  `json:"totals"`
	RPM           float64 `json:"rpm"`
}

package ingest

import "strings"

// Kind is one of the four canonical metric categories a channel upload must
// supply, or KindUnknown for unclassifiable files.
type Kind string

const (
	KindViews       Kind = "views"
	KindWatchTime   Kind = "watchTime"
	KindSubscribers Kind = "subscribers"
	KindRevenue     Kind = "revenue"
	KindUnknown     Kind = ""
)

// CanonicalFilenames maps each kind to the filename an upload is expected to
// use for it. Files under other names are still accepted when their headers
// are detectable (see DetectKind).
var CanonicalFilenames = map[Kind]string{
	KindViews:       "views.csv",
	KindWatchTime:   "watch_time.csv",
	KindSubscribers: "subscribers.csv",
	KindRevenue:     "revenue.csv",
}

// kindOrder fixes the iteration order wherever determinism matters.
var kindOrder = []Kind{KindViews, KindWatchTime, KindSubscribers, KindRevenue}

// DetectKind classifies a file by its normalized (lowercased, trimmed)
// header names. Categories overlap textually, so the most distinctive
// tokens are checked first: "revenue" and "watch" must win before the broad
// "view" substring, which would otherwise false-positive on headers like
// "revenue per view".
func DetectKind(headers []string) Kind {
	contains := func(substr string) bool {
		for _, h := range headers {
			if strings.Contains(h, substr) {
				return true
			}
		}
		return false
	}
	hasWord := func(word string) bool {
		for _, h := range headers {
			if h == word {
				return true
			}
		}
		return false
	}

	switch {
	case contains("revenue"):
		return KindRevenue
	case contains("watch") && (contains("minute") || contains("hour")):
		return KindWatchTime
	case contains("subs") || contains("subscriber"):
		return KindSubscribers
	case hasWord("views") || contains("view"):
		return KindViews
	}
	return KindUnknown
}

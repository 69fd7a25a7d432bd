package ingest

import (
	"strings"
	"testing"

	"github.com/availlant/channelpulse/internal/model"
)

func fullFolder() []model.File {
	return []model.File{
		file("views.csv", "date,views\n2024-01-02,200\n2024-01-01,100\n"),
		file("watch_time.csv", "date,watch_time_minutes\n2024-01-01,50\n2024-01-02,60\n"),
		file("subscribers.csv", "date,subscribers\n2024-01-01,5\n2024-01-02,-2\n"),
		file("revenue.csv", "date,revenue\n2024-01-01,$1.50\n2024-01-02,2.50\n"),
	}
}

func TestAssembleChannel_FoldsAllKinds(t *testing.T) {
	ch, warnings, err := AssembleChannel("MyChannel", fullFolder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected zero warnings, got %v", warnings)
	}
	if ch.ChannelName != "MyChannel" {
		t.Errorf("channel name = %q, want MyChannel", ch.ChannelName)
	}
	if len(ch.Daily) != 2 {
		t.Fatalf("expected 2 daily records, got %d", len(ch.Daily))
	}

	first := ch.Daily[0]
	if first.Date != "2024-01-01" {
		t.Errorf("daily not sorted ascending: first date = %s", first.Date)
	}
	if first.Views != 100 || first.WatchTimeMinutes != 50 || first.SubsNet != 5 || !almostEqual(first.RevenueUsd, 1.50, 1e-9) {
		t.Errorf("unexpected first record: %+v", first)
	}

	second := ch.Daily[1]
	if second.Views != 200 || second.WatchTimeMinutes != 60 || second.SubsNet != -2 || !almostEqual(second.RevenueUsd, 2.50, 1e-9) {
		t.Errorf("unexpected second record: %+v", second)
	}
}

func TestAssembleChannel_WatchHoursConvertToMinutes(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n2024-01-01,100\n"),
		file("watch_time.csv", "date,watch time (hours)\n2024-01-01,2.5\n"),
		file("subscribers.csv", "date,subscribers\n2024-01-01,0\n"),
		file("revenue.csv", "date,revenue\n2024-01-01,0\n"),
	}

	ch, _, err := AssembleChannel("C", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ch.Daily[0].WatchTimeMinutes; got != 150 {
		t.Errorf("watch time = %v minutes, want 150", got)
	}
}

func TestAssembleChannel_MinutesWinOverHours(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n2024-01-01,100\n"),
		file("watch_time.csv", "date,watch_time_minutes,watch hours\n2024-01-01,90,2\n"),
		file("subscribers.csv", "date,subscribers\n2024-01-01,0\n"),
		file("revenue.csv", "date,revenue\n2024-01-01,0\n"),
	}

	ch, _, err := AssembleChannel("C", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ch.Daily[0].WatchTimeMinutes; got != 90 {
		t.Errorf("watch time = %v, want minutes column (90) over hours", got)
	}
}

func TestAssembleChannel_SubsGainedMinusLost(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n2024-01-01,1\n"),
		file("watch_time.csv", "date,watch_time_minutes\n2024-01-01,1\n"),
		file("subscribers.csv", "date,subscribers gained,subscribers lost\n2024-01-01,12,4\n"),
		file("revenue.csv", "date,revenue\n2024-01-01,0\n"),
	}

	ch, _, err := AssembleChannel("C", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ch.Daily[0].SubsNet; got != 8 {
		t.Errorf("subsNet = %d, want 8 (gained - lost)", got)
	}
}

func TestAssembleChannel_RevenueSubstringFallback(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n2024-01-01,1\n"),
		file("watch_time.csv", "date,watch_time_minutes\n2024-01-01,1\n"),
		file("subscribers.csv", "date,subscribers\n2024-01-01,0\n"),
		file("revenue.csv", "date,ad revenue (eur)\n2024-01-01,3.75\n"),
	}

	ch, _, err := AssembleChannel("C", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ch.Daily[0].RevenueUsd; !almostEqual(got, 3.75, 1e-9) {
		t.Errorf("revenue = %v, want 3.75 via substring fallback", got)
	}
}

func TestAssembleChannel_DropsUnparseableDates(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\nnot-a-date,500\n2024-01-01,100\n,7\n"),
		file("watch_time.csv", "date,watch_time_minutes\n2024-01-01,50\n"),
		file("subscribers.csv", "date,subscribers\n2024-01-01,5\n"),
		file("revenue.csv", "date,revenue\n2024-01-01,1\n"),
	}

	ch, _, err := AssembleChannel("C", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ch.Daily) != 1 {
		t.Errorf("expected 1 record after dropping bad dates, got %d", len(ch.Daily))
	}
}

func TestAssembleChannel_ClampsNegatives(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n2024-01-01,-100\n"),
		file("watch_time.csv", "date,watch_time_minutes\n2024-01-01,-50\n"),
		file("subscribers.csv", "date,subscribers\n2024-01-01,-5\n"),
		file("revenue.csv", "date,revenue\n2024-01-01,-1.50\n"),
	}

	ch, _, err := AssembleChannel("C", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := ch.Daily[0]
	if d.Views != 0 || d.WatchTimeMinutes != 0 || d.RevenueUsd != 0 {
		t.Errorf("views/watch/revenue must clamp to 0, got %+v", d)
	}
	if d.SubsNet != -5 {
		t.Errorf("subsNet = %d, want -5 (stays signed)", d.SubsNet)
	}
}

func TestIngestBatch_FolderIsolation(t *testing.T) {
	folders := map[string][]model.File{
		"Good": fullFolder(),
		"Bad": {
			file("views.csv", "date,views\n2024-01-01,1\n"),
		},
	}

	res := IngestBatch(folders)
	if len(res.Channels) != 1 || res.Channels[0].ChannelName != "Good" {
		t.Fatalf("expected the good folder to survive, got %+v", res.Channels)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Bad") {
		t.Errorf("expected one error naming the bad folder, got %v", res.Errors)
	}
}

func TestIngestBatch_WarningsPrefixedWithFolder(t *testing.T) {
	folders := map[string][]model.File{
		"MyChannel": {
			file("a.csv", "date,views\n"),
			file("watch_time.csv", "date,watch_time_minutes\n"),
			file("subscribers.csv", "date,subscribers\n"),
			file("revenue.csv", "date,revenue\n"),
		},
	}

	res := IngestBatch(folders)
	if len(res.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", res.Warnings)
	}
	if !strings.HasPrefix(res.Warnings[0], "MyChannel: ") {
		t.Errorf("warning not folder-prefixed: %q", res.Warnings[0])
	}
}

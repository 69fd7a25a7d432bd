package ingest

import (
	"strings"
	"testing"

	"github.com/availlant/channelpulse/internal/model"
)

func file(name, content string) model.File {
	return model.File{Name: name, Data: []byte(content)}
}

func TestResolveFolder_CanonicalNames(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n2024-01-01,100\n"),
		file("watch_time.csv", "date,watch_time_minutes\n2024-01-01,50\n"),
		file("subscribers.csv", "date,subscribers\n2024-01-01,5\n"),
		file("revenue.csv", "date,revenue\n2024-01-01,1.23\n"),
	}

	assigned, warnings, err := ResolveFolder("MyChannel", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected zero warnings, got %v", warnings)
	}
	for kind, want := range CanonicalFilenames {
		if assigned[kind].Name != want {
			t.Errorf("kind %s assigned %q, want %q", kind, assigned[kind].Name, want)
		}
	}
}

func TestResolveFolder_CaseInsensitiveFilenames(t *testing.T) {
	files := []model.File{
		file("Views.CSV", "date,views\n"),
		file("WATCH_TIME.csv", "date,watch_time_minutes\n"),
		file("Subscribers.csv", "date,subscribers\n"),
		file("Revenue.csv", "date,revenue\n"),
	}

	_, warnings, err := ResolveFolder("MyChannel", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected zero warnings, got %v", warnings)
	}
}

func TestResolveFolder_ContentDetection(t *testing.T) {
	files := []model.File{
		file("a.csv", "date,views\n2024-01-01,100\n"),
		file("b.csv", "date,watch_time_minutes\n2024-01-01,50\n"),
		file("c.csv", "date,subscribers\n2024-01-01,5\n"),
		file("d.csv", "date,revenue\n2024-01-01,1.23\n"),
	}

	assigned, warnings, err := ResolveFolder("MyChannel", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assigned[KindViews].Name != "a.csv" {
		t.Errorf("views assigned %q, want a.csv", assigned[KindViews].Name)
	}
	if assigned[KindWatchTime].Name != "b.csv" {
		t.Errorf("watchTime assigned %q, want b.csv", assigned[KindWatchTime].Name)
	}
	if assigned[KindSubscribers].Name != "c.csv" {
		t.Errorf("subscribers assigned %q, want c.csv", assigned[KindSubscribers].Name)
	}
	if assigned[KindRevenue].Name != "d.csv" {
		t.Errorf("revenue assigned %q, want d.csv", assigned[KindRevenue].Name)
	}
	// One mismatch warning per content-sniffed file.
	if len(warnings) != 4 {
		t.Errorf("expected 4 naming warnings, got %d: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "Detected") {
			t.Errorf("unexpected warning %q", w)
		}
	}
}

func TestResolveFolder_DuplicateKind(t *testing.T) {
	files := []model.File{
		file("a.csv", "date,views\n"),
		file("b.csv", "date,watch_time_minutes\n"),
		file("c.csv", "date,subscribers\n"),
		file("d.csv", "date,revenue\n"),
		file("e.csv", "date,revenue\n"),
	}

	assigned, warnings, err := ResolveFolder("MyChannel", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assigned[KindRevenue].Name != "d.csv" {
		t.Errorf("revenue assigned %q, want first-seen d.csv", assigned[KindRevenue].Name)
	}

	var dupWarnings int
	for _, w := range warnings {
		if strings.Contains(w, "Multiple files look like revenue") {
			dupWarnings++
			if !strings.Contains(w, `"e.csv"`) {
				t.Errorf("duplicate warning should name the ignored file: %q", w)
			}
		}
	}
	if dupWarnings != 1 {
		t.Errorf("expected exactly one duplicate warning, got %d: %v", dupWarnings, warnings)
	}
}

func TestResolveFolder_DuplicateOfFilenameAssignment(t *testing.T) {
	// revenue.csv wins by exact name; extra.csv with revenue headers is
	// rejected with a warning, keeping the filename-based assignment.
	files := []model.File{
		file("views.csv", "date,views\n"),
		file("watch_time.csv", "date,watch_time_minutes\n"),
		file("subscribers.csv", "date,subscribers\n"),
		file("revenue.csv", "date,revenue\n"),
		file("extra.csv", "date,revenue\n"),
	}

	assigned, warnings, err := ResolveFolder("MyChannel", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assigned[KindRevenue].Name != "revenue.csv" {
		t.Errorf("revenue assigned %q, want revenue.csv", assigned[KindRevenue].Name)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Duplicate revenue file detected") {
		t.Errorf("expected one duplicate warning, got %v", warnings)
	}
}

func TestResolveFolder_MissingKinds(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n"),
		file("revenue.csv", "date,revenue\n"),
	}

	_, _, err := ResolveFolder("MyChannel", files)
	if err == nil {
		t.Fatal("expected missing-files error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "MyChannel") {
		t.Errorf("error should name the folder: %q", msg)
	}
	if !strings.Contains(msg, "watch_time.csv") || !strings.Contains(msg, "subscribers.csv") {
		t.Errorf("error should name the missing canonical files: %q", msg)
	}
	if strings.Contains(msg, "views.csv") || strings.Contains(msg, "revenue.csv") {
		t.Errorf("error should not name supplied files: %q", msg)
	}
}

func TestResolveFolder_IgnoresNonCSV(t *testing.T) {
	files := []model.File{
		file("views.csv", "date,views\n"),
		file("watch_time.csv", "date,watch_time_minutes\n"),
		file("subscribers.csv", "date,subscribers\n"),
		file("notes.txt", "date,revenue\n"),
	}

	_, _, err := ResolveFolder("MyChannel", files)
	if err == nil || !strings.Contains(err.Error(), "revenue.csv") {
		t.Errorf("non-.csv file must not satisfy a kind, got err=%v", err)
	}
}

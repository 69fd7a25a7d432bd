package ingest

import (
	"fmt"
	"strings"

	"github.com/availlant/channelpulse/internal/model"
)

// ResolveFolder assigns each of the four required kinds to one of the
// folder's files. Exact canonical filenames win first (case-insensitive);
// remaining kinds are filled by sniffing the headers of leftover .csv files.
// Ambiguity resolves deterministically first-seen-wins and is reported as
// warnings; a kind with no file at all fails the folder.
func ResolveFolder(folderName string, files []model.File) (map[Kind]model.File, []string, error) {
	var warnings []string

	byLowerName := make(map[string]model.File, len(files))
	for _, f := range files {
		byLowerName[strings.ToLower(f.Name)] = f
	}

	assigned := make(map[Kind]model.File, len(kindOrder))
	for _, kind := range kindOrder {
		if f, ok := byLowerName[CanonicalFilenames[kind]]; ok {
			assigned[kind] = f
		}
	}

	if len(assigned) < len(kindOrder) {
		used := make(map[string]bool, len(assigned))
		for _, f := range assigned {
			used[f.Name] = true
		}

		detected := make(map[Kind]model.File)
		for _, f := range files {
			if used[f.Name] || !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
				continue
			}
			kind := DetectKind(HeaderRow(f.Data))
			if kind == KindUnknown {
				continue
			}
			if chosen, ok := assigned[kind]; ok {
				warnings = append(warnings, fmt.Sprintf("Duplicate %s file detected (%q) — using %q.", kind, f.Name, chosen.Name))
				continue
			}
			if chosen, ok := detected[kind]; ok {
				warnings = append(warnings, fmt.Sprintf("Multiple files look like %s; using %q and ignoring %q.", kind, chosen.Name, f.Name))
				continue
			}
			detected[kind] = f
			if strings.ToLower(f.Name) != CanonicalFilenames[kind] {
				warnings = append(warnings, fmt.Sprintf("Detected %s by content from %q (expected name %q).", kind, f.Name, CanonicalFilenames[kind]))
			}
		}

		for kind, f := range detected {
			if _, ok := assigned[kind]; !ok {
				assigned[kind] = f
			}
		}
	}

	var missing []string
	for _, kind := range kindOrder {
		if _, ok := assigned[kind]; !ok {
			missing = append(missing, CanonicalFilenames[kind])
		}
	}
	if len(missing) > 0 {
		return nil, warnings, fmt.Errorf("missing file(s) in %s: %s", folderName, strings.Join(missing, ", "))
	}

	return assigned, warnings, nil
}

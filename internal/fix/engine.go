package fix

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"lockweak/internal/diag"
	"lockweak/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix, preferring always-safe ones.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix that does not conflict.
	ApplyModeAll
	ApplyModeID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// InMemory keeps results in ApplyResult.Contents instead of writing files.
	// Virtual files are only editable in this mode.
	InMemory bool
}

type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

type FileChange struct {
	Path      string
	EditCount int
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
	// Contents holds the edited buffers when ApplyOptions.InMemory is set.
	Contents map[source.FileID][]byte
}

func (r *ApplyResult) skip(f diag.Fix, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply собирает fixes из диагностик, выбирает по opts и применяет.
// Fix применяется целиком или никак: одна битая правка отменяет весь fix.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res := &ApplyResult{Applied: []AppliedFix{}, Skipped: []SkippedFix{}, FileChanges: []FileChange{}}
	if fs == nil {
		return res, fmt.Errorf("fix: FileSet is nil")
	}

	cands, skipped := gatherCandidates(diagnostics)
	res.Skipped = append(res.Skipped, skipped...)
	sortCandidates(cands)
	selected, skipped := selectCandidates(cands, opts)
	res.Skipped = append(res.Skipped, skipped...)

	s := newSession(fs, opts.InMemory)
	for _, c := range selected {
		n, reason := s.try(c.fix.Edits)
		if reason != "" {
			res.skip(c.fix, reason)
			continue
		}
		res.Applied = append(res.Applied, AppliedFix{
			ID:            c.fix.ID,
			Title:         c.fix.Title,
			Code:          c.diag.Code,
			Message:       c.diag.Message,
			Applicability: c.fix.Applicability,
			PrimaryPath:   displayPath(fs, c.diag.Primary.File),
			EditCount:     n,
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}

	if opts.InMemory {
		res.Contents = make(map[source.FileID][]byte, len(s.files))
		for id, b := range s.files {
			res.Contents[id] = b.data
		}
	} else if err := s.write(); err != nil {
		return res, err
	}
	res.FileChanges = s.changes()
	return res, nil
}

// gatherCandidates разворачивает fixes всех диагностик в кандидатов.
// Fix без правок и повтор ID пропускаются; пустой ID собирается из
// кода, файла, начала span и номера fix.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips = []SkippedFix{}
		seen  = map[string]bool{}
	)
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, i)
			}
			if seen[f.ID] {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// sortCandidates: по primary span, затем порядок появления, код,
// preferred, ID и заголовок.
func sortCandidates(cands []candidate) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		if c := cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.diag.Code, b.diag.Code),
		); c != 0 {
			return c
		}
		if a.fix.IsPreferred != b.fix.IsPreferred {
			if a.fix.IsPreferred {
				return -1
			}
			return 1
		}
		return cmp.Or(strings.Compare(a.fix.ID, b.fix.ID), strings.Compare(a.fix.Title, b.fix.Title))
	})
}

const reasonRequiresAll = "fix requires all fixes to be applied"

func selectCandidates(cands []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	skips := []SkippedFix{}
	switch opts.Mode {
	case ApplyModeID:
		i := slices.IndexFunc(cands, func(c candidate) bool { return c.fix.ID == opts.TargetID })
		switch {
		case i < 0:
			return nil, append(skips, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
		case cands[i].fix.RequiresAll:
			return nil, append(skips, SkippedFix{ID: opts.TargetID, Reason: reasonRequiresAll})
		}
		return cands[i : i+1], skips

	case ApplyModeAll:
		var picked []candidate
		for _, c := range cands {
			if c.fix.Applicability != diag.FixApplicabilityAlwaysSafe {
				skips = append(skips, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Reason: "applicability is " + c.fix.Applicability.String()})
				continue
			}
			picked = append(picked, c)
		}
		return picked, skips

	case ApplyModeOnce:
		fallback := -1
		for i, c := range cands {
			if c.fix.RequiresAll {
				skips = append(skips, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Reason: reasonRequiresAll})
				continue
			}
			if c.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return cands[i : i+1], skips
			}
			if fallback < 0 {
				fallback = i
			}
		}
		if fallback >= 0 {
			return cands[fallback : fallback+1], skips
		}
		return nil, skips
	}
	return nil, nil
}

func displayPath(fs *source.FileSet, id source.FileID) string {
	if fs == nil || int(id) >= fs.Len() {
		return ""
	}
	return fs.Get(id).FormatPath("auto", fs.BaseDir())
}

// writeFile кладёт буфер на диск, возвращая BOM и CRLF, снятые при загрузке.
func writeFile(f *source.File, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(f.Path, f.Restore(data), mode); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

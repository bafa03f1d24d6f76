package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"lockweak/internal/diag"
	"lockweak/internal/expand"
	"lockweak/internal/observ"
	"lockweak/internal/source"
	"lockweak/internal/trace"
)

// FileResult: итог раскрытия одного файла.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Output  []byte
	Changed bool
	Stats   expand.Stats
	Bag     *diag.Bag
	// Cached is set when Output came from the disk cache.
	Cached bool
	// Skipped: синтаксические ошибки, Output равен исходнику
	Skipped bool
	Timing  observ.Report
}

// Result aggregates a single-file or directory run.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Stats   expand.Stats
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Bag merges every file's diagnostics into one sorted bag.
func (r *Result) Bag() *diag.Bag {
	out := diag.NewBag(0)
	for i := range r.Files {
		out.Merge(r.Files[i].Bag)
	}
	out.Sort()
	return out
}

// Changed returns the files whose output differs from their source.
func (r *Result) Changed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Changed {
			out = append(out, f)
		}
	}
	return out
}

// ExpandPath раскрывает файл или каталог.
func ExpandPath(ctx context.Context, path string, opts Options) (*Result, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return ExpandDir(ctx, path, opts)
	}
	return ExpandFile(ctx, path, opts)
}

// ExpandFile загружает и раскрывает один файл.
func ExpandFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	opts = opts.withContextTracer(ctx)
	ctx, span := trace.StartSpan(ctx, opts.Tracer, trace.ScopeDriver, "expand-file")
	defer span.End(path)

	fr, err := ExpandSource(fs, id, opts, trace.ParentFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return &Result{FileSet: fs, Files: []FileResult{fr}, Stats: fr.Stats}, nil
}

// ExpandSource runs parse and expansion for a file already in fs.
// A file with syntax errors is returned unchanged with Skipped set.
func ExpandSource(fs *source.FileSet, id source.FileID, opts Options, parent uint64) (FileResult, error) {
	sf := fs.Get(id)
	res := FileResult{
		Path:   sf.Path,
		FileID: id,
		Output: sf.Content,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}
	tracer := opts.tracer()
	span := trace.Begin(tracer, trace.ScopeFile, "file", parent).WithExtra("path", sf.Path)
	started := time.Now()
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(sf.Content, opts)
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			// битая запись: обычный промах
			trace.Point(tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
		}
		if ok {
			res.Output, res.Changed, res.Stats, res.Cached = payload.Output, payload.Changed, payload.Stats, true
			emit(opts.Progress, Event{File: sf.Path, Stage: StageExpand, Status: StatusDone, Elapsed: time.Since(started)})
			span.End("cached")
			return res, nil
		}
	}

	emit(opts.Progress, Event{File: sf.Path, Stage: StageParse, Status: StatusWorking})
	phase := timer.Begin("parse")
	pass := span.Child(trace.ScopePass, "parse")
	builder, astFile, err := parseInto(fs, id, res.Bag, opts.MaxDiagnostics)
	pass.End("")
	timer.End(phase, "")
	if err != nil {
		span.Fail(err)
		return res, err
	}
	if res.Bag.HasErrors() {
		res.Skipped = true
		emit(opts.Progress, Event{File: sf.Path, Stage: StageParse, Status: StatusSkipped, Elapsed: time.Since(started)})
		span.End("syntax errors")
		return res, nil
	}

	emit(opts.Progress, Event{File: sf.Path, Stage: StageExpand, Status: StatusWorking})
	phase = timer.Begin("expand")
	pass = span.Child(trace.ScopePass, "expand")
	eopts := opts.expandOptions()
	eopts.Reporter = &diag.BagReporter{Bag: res.Bag}
	eopts.ParentSpan = pass.ID()
	out, err := expand.ExpandFile(builder, astFile, sf, eopts)
	pass.Fail(err)
	if err != nil {
		timer.End(phase, "")
		emit(opts.Progress, Event{File: sf.Path, Stage: StageExpand, Status: StatusError, Err: err})
		span.Fail(err)
		return res, err
	}
	timer.End(phase, fmt.Sprintf("%d classes", out.Stats.Classes))
	res.Output, res.Changed, res.Stats = out.Output, out.Changed, out.Stats

	if opts.Cache != nil && res.Bag.Len() == 0 {
		if err := opts.Cache.Put(key, &DiskPayload{Path: sf.Path, Output: res.Output, Changed: res.Changed, Stats: res.Stats}); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
		}
	}
	if timer != nil {
		res.Timing = timer.Report()
		appendTimingDiagnostic(res.Bag, id, timingPayload{Kind: "file", Path: sf.Path, TotalMS: res.Timing.TotalMS, Phases: res.Timing.Phases})
	}

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: sf.Path, Stage: StageExpand, Status: status, Elapsed: time.Since(started)})
	span.WithExtra("changed", fmt.Sprint(res.Changed)).End("")
	return res, nil
}

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic кладёт OBS6001 с JSON фаз в заметке; лимит bag'а не мешает.
func appendTimingDiagnostic(bag *diag.Bag, file source.FileID, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	at := source.Span{File: file}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, at, msg).WithNote(at, string(data))
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}

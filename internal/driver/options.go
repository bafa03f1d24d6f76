package driver

import (
	"context"

	"lockweak/internal/expand"
	"lockweak/internal/format"
	"lockweak/internal/trace"
)

// DefaultExtensions: суффиксы исходников, которые обходит ExpandDir.
var DefaultExtensions = []string{".swift"}

// Options: общие настройки прогона по файлам.
type Options struct {
	Names  expand.Names
	Policy expand.ExtensionPolicy
	Format format.Options

	MaxDiagnostics int
	// Jobs ограничивает параллелизм ExpandDir; 0: GOMAXPROCS.
	Jobs int
	// Extensions and Exclude filter directory walks. Exclude matches
	// slash-separated paths relative to the root with path.Match.
	Extensions []string
	Exclude    []string

	Cache    *DiskCache
	Tracer   trace.Tracer
	Progress ProgressSink
	// Timings добавляет OBS6001 с фазами в bag каждого файла.
	Timings bool
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

// withContextTracer falls back to the tracer attached to ctx.
func (o Options) withContextTracer(ctx context.Context) Options {
	if o.Tracer == nil {
		o.Tracer = trace.FromContext(ctx)
	}
	return o
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

func (o Options) expandOptions() expand.Options {
	return expand.Options{
		Names:  o.Names,
		Policy: o.Policy,
		Format: o.Format,
		Tracer: o.tracer(),
	}
}

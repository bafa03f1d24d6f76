package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer attached with WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// ParentFromContext returns the innermost span opened with StartSpan, 0 at the root.
func ParentFromContext(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(spanKey{}).(uint64); ok {
			return id
		}
	}
	return 0
}

// StartSpan opens a span under the one carried by ctx. t == nil uses the
// tracer from ctx. Отфильтрованный по уровню спан не перекрывает родителя,
// чтобы дети не теряли предка.
func StartSpan(ctx context.Context, t Tracer, scope Scope, name string) (context.Context, *Span) {
	if t == nil {
		t = FromContext(ctx)
	}
	span := Begin(t, scope, name, ParentFromContext(ctx))
	if span.ID() == 0 {
		return ctx, span
	}
	return context.WithValue(ctx, spanKey{}, span.ID()), span
}

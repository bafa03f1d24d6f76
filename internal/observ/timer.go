package observ

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Phase: одна фаза обработки файла.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer засекает фазы. Nil *Timer ничего не пишет, поэтому вызывающему
// не нужно проверять --timings.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].Dur = time.Since(t.phases[idx].Start)
	t.phases[idx].Note = note
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report: фазы в миллисекундах, форма полезной нагрузки OBS6001.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	for _, p := range t.phases {
		ms := Millis(p.Dur)
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms, Note: p.Note})
		r.TotalMS += ms
	}
	return r
}

// Summary renders the timer as an aligned table.
func (t *Timer) Summary() string {
	var sb strings.Builder
	_ = t.Report().WriteTable(&sb)
	return sb.String()
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Accumulate adds other into r, summing phases with the same name.
// Notes of summed phases are dropped: they describe a single file.
func (r *Report) Accumulate(other Report) {
	for _, p := range other.Phases {
		found := false
		for i := range r.Phases {
			if r.Phases[i].Name == p.Name {
				r.Phases[i].DurationMS += p.DurationMS
				r.Phases[i].Note = ""
				found = true
				break
			}
		}
		if !found {
			r.Phases = append(r.Phases, p)
		}
	}
	r.TotalMS += other.TotalMS
}

func (r Report) WriteTable(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	_, err := io.WriteString(w, sb.String())
	return err
}

package main

import (
	"fmt"
	"io"
	"time"

	"lockweak/internal/driver"
	"lockweak/internal/observ"
)

func printRunSummary(out io.Writer, res *driver.Result, elapsed time.Duration) {
	if out == nil || res == nil {
		return
	}
	var (
		changed, cached, skipped int
		phases                   observ.Report
	)
	for _, fr := range res.Files {
		phases.Accumulate(fr.Timing)
		if fr.Changed {
			changed++
		}
		if fr.Cached {
			cached++
		}
		if fr.Skipped {
			skipped++
		}
	}
	fmt.Fprintf(out, "processed %d file(s): %d changed, %d cached, %d skipped in %.1f ms\n",
		len(res.Files), changed, cached, skipped, observ.Millis(elapsed))
	st := res.Stats
	fmt.Fprintf(out, "classes %d, backing fields %d, extensions %d, accessors %d, rejected %d\n",
		st.Classes, st.Fields, st.Extensions, st.Accessors, st.Rejected)
	// кэшированные файлы фаз не имеют
	if len(phases.Phases) > 0 {
		_ = phases.WriteTable(out)
	}
}

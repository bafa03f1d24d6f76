package driver

import "time"

// Stage: фаза работы над одним файлом.
type Stage string

const (
	StageParse  Stage = "parse"
	StageExpand Stage = "expand"
	StageWrite  Stage = "write"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusSkipped: синтаксические ошибки, файл не раскрывался.
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Final reports whether no further event of the same run changes the file,
// a StageWrite event aside.
func (s Status) Final() bool {
	return s == StatusDone || s == StatusSkipped || s == StatusError
}

// Event: прогресс одного файла; пустой File означает весь прогон.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink gets events from several goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into Ch; a nil Ch drops them.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

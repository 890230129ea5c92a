package driver

import "time"

// Phase names one step of the per-file pipeline.
type Phase string

const (
	PhaseLoad       Phase = "load"
	PhaseLex        Phase = "lex"
	PhaseParse      Phase = "parse"
	PhaseDirectives Phase = "directives"
	PhaseExtract    Phase = "extract"
)

// Status is the state of a file in a directory run.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Phase   Phase
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Directory runs call OnEvent from
// several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

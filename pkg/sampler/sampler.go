// Package sampler probes the desktop environment through external commands
// and assembles the results into one Sample per call.
package sampler

import (
	"strconv"
	"strings"
	"time"
)

// Sample is a snapshot of desktop activity state at one instant. All fields
// are populated together or the sample does not exist. Equality is
// structural over all five fields, so plain == comparison is the defined
// sameness check.
type Sample struct {
	WindowTitle       string
	PID               uint32
	ProcessName       string
	ScreensaverActive bool
	Idle              bool
}

// Sampler produces Samples by running five probes per call. It holds no
// state across calls.
type Sampler struct {
	run Runner
}

func New(run Runner) *Sampler {
	return &Sampler{run: run}
}

// Take probes the active window title, its owning pid, the process name for
// that pid, screensaver state and idle time, in that order. The first
// failing step aborts the attempt; no partial Sample is ever returned.
// interval is the configured sample interval, used to derive Idle.
func (s *Sampler) Take(interval time.Duration) (Sample, error) {
	title, err := s.run.Output("xdotool", "getactivewindow", "getwindowname")
	if err != nil {
		return Sample{}, err
	}

	pidText, err := s.run.Output("xdotool", "getactivewindow", "getwindowpid")
	if err != nil {
		return Sample{}, err
	}
	pid, err := strconv.ParseUint(pidText, 10, 32)
	if err != nil {
		return Sample{}, &Error{Kind: KindParse, Probe: "window pid", Err: err}
	}

	// ps gets the pid exactly as xdotool printed it, not a re-stringified
	// number.
	processName, err := s.run.Output("ps", "-p", pidText, "-o", "comm=")
	if err != nil {
		return Sample{}, err
	}

	screensaverText, err := s.run.Output("gnome-screensaver-command", "-q")
	if err != nil {
		return Sample{}, err
	}
	// Anything that does not mention "inactive" (including empty or
	// malformed output) counts as an active screensaver.
	screensaverActive := !strings.Contains(screensaverText, "inactive")

	idleText, err := s.run.Output("xprintidle")
	if err != nil {
		return Sample{}, err
	}
	idleMillis, err := strconv.ParseUint(idleText, 10, 64)
	if err != nil {
		return Sample{}, &Error{Kind: KindParse, Probe: "idle time", Err: err}
	}

	return Sample{
		WindowTitle:       title,
		PID:               uint32(pid),
		ProcessName:       processName,
		ScreensaverActive: screensaverActive,
		Idle:              idleMillis > uint64(interval.Milliseconds()),
	}, nil
}

// Tools lists the external commands the sampler invokes, for availability
// checks at startup or in status output.
func Tools() []string {
	return []string{"xdotool", "ps", "gnome-screensaver-command", "xprintidle"}
}

package sampler

import "fmt"

// ErrorKind identifies which class of failure aborted a sampling attempt.
// The set is closed: callers can switch on it to log or react per class.
type ErrorKind int

const (
	// KindProbeIO means an external probe command could not be run or its
	// output could not be captured.
	KindProbeIO ErrorKind = iota

	// KindDecode means a probe command's output was not valid UTF-8.
	KindDecode

	// KindParse means a field expected to be a decimal integer (pid, idle
	// milliseconds) was not.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindProbeIO:
		return "probe i/o"
	case KindDecode:
		return "decode"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is the failure of one probe step. Probe names the command (or the
// field being parsed) so diagnostics can pinpoint the step that failed.
type Error struct {
	Kind  ErrorKind
	Probe string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Probe, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

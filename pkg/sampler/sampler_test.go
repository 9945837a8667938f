package sampler

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeRunner maps "command arg arg..." to a canned result and records the
// invocations it saw.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Output(name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	out, ok := f.outputs[key]
	if !ok {
		return "", &Error{Kind: KindProbeIO, Probe: name, Err: errors.New("unexpected probe")}
	}
	return out, nil
}

func workingRunner() *fakeRunner {
	return &fakeRunner{
		outputs: map[string]string{
			"xdotool getactivewindow getwindowname": "Terminal",
			"xdotool getactivewindow getwindowpid":  "4821",
			"ps -p 4821 -o comm=":                   "bash",
			"gnome-screensaver-command -q":          "screensaver status: inactive",
			"xprintidle":                            "2000",
		},
	}
}

func TestTake(t *testing.T) {
	run := workingRunner()
	sample, err := New(run).Take(5 * time.Second)
	if err != nil {
		t.Fatalf("Take() error: %v", err)
	}

	want := Sample{
		WindowTitle:       "Terminal",
		PID:               4821,
		ProcessName:       "bash",
		ScreensaverActive: false,
		Idle:              false,
	}
	if sample != want {
		t.Errorf("Take() = %+v, want %+v", sample, want)
	}
}

func TestTakePassesPidTextToPs(t *testing.T) {
	run := workingRunner()
	if _, err := New(run).Take(5 * time.Second); err != nil {
		t.Fatalf("Take() error: %v", err)
	}

	found := false
	for _, call := range run.calls {
		if call == "ps -p 4821 -o comm=" {
			found = true
		}
	}
	if !found {
		t.Errorf("ps was not invoked with the textual pid, calls: %v", run.calls)
	}
}

func TestTakeScreensaverDetection(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantActive bool
	}{
		{"reports inactive", "screensaver is inactive\n", false},
		{"empty output", "", true},
		{"reports active", "active", true},
		{"unrelated text", "cannot connect to session bus", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := workingRunner()
			run.outputs["gnome-screensaver-command -q"] = strings.TrimSpace(tt.output)
			sample, err := New(run).Take(5 * time.Second)
			if err != nil {
				t.Fatalf("Take() error: %v", err)
			}
			if sample.ScreensaverActive != tt.wantActive {
				t.Errorf("ScreensaverActive = %v, want %v", sample.ScreensaverActive, tt.wantActive)
			}
		})
	}
}

func TestTakeIdleDerivation(t *testing.T) {
	tests := []struct {
		name     string
		idleText string
		wantIdle bool
	}{
		{"below interval", "2000", false},
		{"equal to interval", "5000", false}, // strict inequality
		{"just above interval", "5001", true},
		{"far above interval", "600000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := workingRunner()
			run.outputs["xprintidle"] = tt.idleText
			sample, err := New(run).Take(5 * time.Second)
			if err != nil {
				t.Fatalf("Take() error: %v", err)
			}
			if sample.Idle != tt.wantIdle {
				t.Errorf("Idle = %v, want %v (idle=%sms, interval=5000ms)", sample.Idle, tt.wantIdle, tt.idleText)
			}
		})
	}
}

func TestTakeParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		output string
	}{
		{"non-numeric pid", "xdotool getactivewindow getwindowpid", "abc"},
		{"out-of-range pid", "xdotool getactivewindow getwindowpid", "99999999999999"},
		{"non-numeric idle time", "xprintidle", "soon"},
		{"negative idle time", "xprintidle", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := workingRunner()
			run.outputs[tt.key] = tt.output

			_, err := New(run).Take(5 * time.Second)
			if err == nil {
				t.Fatal("Take() expected parse error")
			}

			var sampleErr *Error
			if !errors.As(err, &sampleErr) {
				t.Fatalf("Take() error type = %T, want *Error", err)
			}
			if sampleErr.Kind != KindParse {
				t.Errorf("error kind = %v, want %v", sampleErr.Kind, KindParse)
			}
		})
	}
}

func TestTakeAbortsAfterFirstFailure(t *testing.T) {
	run := workingRunner()
	run.errs = map[string]error{
		"xdotool getactivewindow getwindowpid": &Error{
			Kind:  KindProbeIO,
			Probe: "xdotool",
			Err:   errors.New("no active window"),
		},
	}

	_, err := New(run).Take(5 * time.Second)
	if err == nil {
		t.Fatal("Take() expected error")
	}

	// Probes after the failing step must not have run.
	for _, call := range run.calls {
		if strings.HasPrefix(call, "ps ") || call == "xprintidle" {
			t.Errorf("probe %q ran after an earlier step failed", call)
		}
	}
}

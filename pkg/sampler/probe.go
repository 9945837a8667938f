package sampler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Runner executes a single probe command and returns its trimmed stdout.
type Runner interface {
	Output(name string, args ...string) (string, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by child-process execution.
func NewRunner() Runner {
	return execRunner{}
}

// Output runs the command with LC_ALL=C so textual markers (e.g. "inactive")
// are stable regardless of the host locale. A command that exits non-zero
// but still writes decodable stdout is a success: tools like
// gnome-screensaver-command report state through the exit code.
func (execRunner) Output(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", &Error{Kind: KindProbeIO, Probe: name, Err: err}
		}
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", &Error{Kind: KindDecode, Probe: name, Err: fmt.Errorf("stdout is not valid UTF-8")}
	}

	return strings.TrimSpace(stdout.String()), nil
}

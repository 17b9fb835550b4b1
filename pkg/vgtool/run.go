// Package vgtool shells out to the two external executables the pipeline
// depends on: VGAudioCli for converting between WAV and the proprietary
// console formats, and vgmstream-cli for probing and decoding them. Both are
// driven through their documented CLI contracts only; arguments are passed as
// explicit lists and never shell-interpreted.
package vgtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

var (
	// ErrEmptyPath is returned when a tool is invoked without a configured
	// executable path.
	ErrEmptyPath = errors.New("vgtool: tool path is empty")
	// ErrNoExitCode is returned when a tool terminates without an exit code,
	// e.g. killed by a signal.
	ErrNoExitCode = errors.New("vgtool: tool terminated without an exit code")
)

// run executes a tool with the given arguments and returns its stdout. A
// non-empty prepath is the command actually executed, with the tool path as
// its first argument; that is how a foreign-runtime binary is launched on
// platforms that need mono or dotnet in front.
//
// No timeout is imposed here; the context is the caller's only handle on a
// hung tool.
func run(ctx context.Context, logger *log.Logger, prepath, path string, args ...string) ([]byte, error) {
	var cmd *exec.Cmd
	if prepath != "" {
		cmd = exec.CommandContext(ctx, prepath, append([]string{path}, args...)...)
	} else {
		cmd = exec.CommandContext(ctx, path, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if logger != nil {
		logger.Debug("running external tool", "cmd", cmd.String())
	}

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				return nil, fmt.Errorf("%w (%s)", ErrNoExitCode, path)
			}
			return nil, errors.New(formatRunError(path, code, stdout.Bytes(), stderr.Bytes()))
		}
		return nil, fmt.Errorf("running %s: %w", path, err)
	}

	if logger != nil {
		logger.Debug("external tool finished",
			"tool", path,
			"stdout", describeStream("stdout", stdout.Bytes()),
			"stderr", describeStream("stderr", stderr.Bytes()),
		)
	}

	return stdout.Bytes(), nil
}

// formatRunError renders a non-zero exit into a message carrying the exit
// code and both captured streams, or a note when a stream is not valid text.
func formatRunError(tool string, code int, stdout, stderr []byte) string {
	return fmt.Sprintf("attempted running %s, found exit code %d\n%s\n%s",
		tool, code,
		describeStream("stdout", stdout),
		describeStream("stderr", stderr),
	)
}

func describeStream(name string, data []byte) string {
	switch {
	case len(data) == 0:
		return name + " is empty"
	case !utf8.Valid(data):
		return name + " couldn't be read as text"
	default:
		return fmt.Sprintf("%s is:\n%s", name, data)
	}
}

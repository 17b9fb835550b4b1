package vgtool

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nus3kit/nus3kit/pkg/pcm"
)

// Converter invokes VGAudioCli. The conversion direction is implied by the
// source and destination file extensions.
type Converter struct {
	// Path to the VGAudioCli executable.
	Path string
	// Prepath optionally names a runtime launcher (mono, dotnet, wine) run
	// in front of Path.
	Prepath string
	Logger  *log.Logger
}

// Configured reports whether a tool path has been set.
func (c *Converter) Configured() bool {
	return c.Path != ""
}

// Convert converts src to dst and returns the destination file contents.
// When encoding with loop points set, the loop range and the encoder flags
// the game expects are appended.
func (c *Converter) Convert(ctx context.Context, src, dst string, loop *pcm.LoopPoints) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("VGAudioCli: %w", ErrEmptyPath)
	}

	args := convertArgs(src, dst, loop)
	if _, err := run(ctx, c.Logger, c.Prepath, c.Path, args...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("reading destination file %s: %w", dst, err)
	}
	if c.Logger != nil {
		c.Logger.Debug("got VGAudioCli output", "bytes", len(data))
	}
	return data, nil
}

func convertArgs(src, dst string, loop *pcm.LoopPoints) []string {
	args := []string{"-c", src, dst}
	if loop != nil {
		args = append(args,
			"-l", fmt.Sprintf("%d-%d", loop.Start, loop.End),
			"--cbr", "--opusheader", "namco",
		)
	}
	return args
}

// Package bank is the heart of the program: it models the sounds inside a
// nus3audio container and drives the transcoding pipeline that moves each
// sound between its proprietary encoded form and editable PCM. All of the
// expensive work (external tool runs, cache churn) happens here, at most once
// per modification.
package bank

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nus3kit/nus3kit/pkg/cache"
	"github.com/nus3kit/nus3kit/pkg/pcm"
)

// ConvertTool converts a source file to a destination file, direction
// implied by the file extensions. Satisfied by vgtool.Converter.
type ConvertTool interface {
	Configured() bool
	Convert(ctx context.Context, src, dst string, loop *pcm.LoopPoints) ([]byte, error)
}

// ProbeTool decodes a proprietary file to bytes and reads loop metadata.
// Satisfied by vgtool.Prober.
type ProbeTool interface {
	Configured() bool
	Decode(ctx context.Context, src string) ([]byte, error)
	LoopPoints(ctx context.Context, src string) *pcm.LoopPoints
}

// Transcoder bundles everything a transcode operation needs: the scratch
// cache, the two external tools and the decode preference. Operations are
// synchronous and block the caller; nothing here spawns goroutines.
type Transcoder struct {
	Cache     *cache.Dir
	Converter ConvertTool
	Prober    ProbeTool
	// PreferVgmstream selects the probing tool for decoding when both tools
	// are configured.
	PreferVgmstream bool
	Logger          *log.Logger
}

// decodeFile converts src (an idsp or lopus file in the cache) to WAV bytes,
// using the preferred tool and falling back to the other when the preferred
// one is unconfigured.
func (t *Transcoder) decodeFile(ctx context.Context, src string) ([]byte, error) {
	if t.PreferVgmstream {
		if t.Prober != nil && t.Prober.Configured() {
			return t.Prober.Decode(ctx, src)
		}
		return t.convertToWAV(ctx, src)
	}
	if t.Converter != nil && t.Converter.Configured() {
		return t.convertToWAV(ctx, src)
	}
	if t.Prober == nil {
		return nil, fmt.Errorf("no decode tool is configured")
	}
	return t.Prober.Decode(ctx, src)
}

func (t *Transcoder) convertToWAV(ctx context.Context, src string) ([]byte, error) {
	if t.Converter == nil {
		return nil, fmt.Errorf("no decode tool is configured")
	}
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".wav"
	return t.Converter.Convert(ctx, src, dst, nil)
}

// ProbeLoopPoints fetches loop metadata for src, best-effort.
func (t *Transcoder) ProbeLoopPoints(ctx context.Context, src string) *pcm.LoopPoints {
	if t.Prober == nil {
		return nil
	}
	return t.Prober.LoopPoints(ctx, src)
}

func (t *Transcoder) logger() *log.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return log.New(io.Discard)
}

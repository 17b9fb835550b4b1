package vgtool

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/nus3kit/nus3kit/pkg/pcm"
)

// Prober invokes vgmstream-cli, either to decode a proprietary file to a
// byte stream on stdout or to read its metadata as JSON.
type Prober struct {
	Path   string
	Logger *log.Logger
}

// Configured reports whether a tool path has been set.
func (p *Prober) Configured() bool {
	return p.Path != ""
}

// Decode runs vgmstream in decode mode and returns the stdout bytes.
func (p *Prober) Decode(ctx context.Context, src string) ([]byte, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("vgmstream: %w", ErrEmptyPath)
	}

	out, err := run(ctx, p.Logger, "", p.Path, "-p", src)
	if err != nil {
		return nil, err
	}
	if p.Logger != nil {
		p.Logger.Debug("decoded with vgmstream", "bytes", len(out))
	}
	return out, nil
}

// streamMetadata is the subset of vgmstream's -mI JSON output we care about.
// Pointer fields distinguish absent values from zero values.
type streamMetadata struct {
	LoopingInfo *struct {
		Start *uint64 `json:"start"`
		End   *uint64 `json:"end"`
	} `json:"loopingInfo"`
}

// metadata runs vgmstream in metadata mode (-m: metadata only, -I: output as
// JSON) and parses the result.
func (p *Prober) metadata(ctx context.Context, src string) (*streamMetadata, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("vgmstream: %w", ErrEmptyPath)
	}

	out, err := run(ctx, p.Logger, "", p.Path, "-mI", src)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("reading vgmstream output: not valid text")
	}

	var meta streamMetadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, fmt.Errorf("parsing vgmstream output: %w", err)
	}
	return &meta, nil
}

// LoopPoints returns the loop points vgmstream reports for src, or nil.
// Loop metadata is best-effort: a missing tool, a failed run, missing or
// ill-typed fields, and an end at or before the start all silently yield nil.
func (p *Prober) LoopPoints(ctx context.Context, src string) *pcm.LoopPoints {
	meta, err := p.metadata(ctx, src)
	if err != nil {
		return nil
	}
	return loopPointsFrom(meta)
}

func loopPointsFrom(meta *streamMetadata) *pcm.LoopPoints {
	if meta == nil || meta.LoopingInfo == nil {
		return nil
	}
	info := meta.LoopingInfo
	if info.Start == nil || info.End == nil || *info.End <= *info.Start {
		return nil
	}
	return &pcm.LoopPoints{Start: *info.Start, End: *info.End}
}

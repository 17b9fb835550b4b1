// Package pcm holds decoded audio and the sample-rate conversion used to fit
// it to the rates the lopus encoder accepts.
package pcm

import (
	"errors"
	"time"
)

var (
	// ErrChannelCount is returned for buffers that are not mono or stereo.
	ErrChannelCount = errors.New("pcm: channel count must be 1 or 2")
	// ErrRaggedBuffer is returned when the sample data does not divide evenly
	// into frames.
	ErrRaggedBuffer = errors.New("pcm: sample count is not a multiple of the channel count")
)

// Buffer is decoded audio: interleaved signed 16-bit samples.
type Buffer struct {
	Samples    []int16
	Channels   int
	SampleRate int
}

// FrameCount returns the number of samples per channel.
func (b *Buffer) FrameCount() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(b.FrameCount()) / float64(b.SampleRate) * float64(time.Second))
}

// Validate checks the buffer invariants.
func (b *Buffer) Validate() error {
	if b.Channels < 1 || b.Channels > 2 {
		return ErrChannelCount
	}
	if len(b.Samples)%b.Channels != 0 {
		return ErrRaggedBuffer
	}
	return nil
}

// NormalizeChannels coerces a buffer of any channel count into mono or
// stereo. Mono and stereo buffers are returned unchanged. Wider layouts are
// folded to stereo by averaging even-indexed channels into the left and
// odd-indexed channels into the right.
func NormalizeChannels(b *Buffer) *Buffer {
	channels := b.Channels
	if channels <= 2 {
		return b
	}
	frames := len(b.Samples) / channels
	out := make([]int16, frames*2)
	half := (channels + 1) / 2
	for f := 0; f < frames; f++ {
		var left, right int
		for c := 0; c < channels; c++ {
			if c%2 == 0 {
				left += int(b.Samples[f*channels+c])
			} else {
				right += int(b.Samples[f*channels+c])
			}
		}
		out[f*2] = int16(left / half)
		out[f*2+1] = int16(right / (channels / 2))
	}
	return &Buffer{Samples: out, Channels: 2, SampleRate: b.SampleRate}
}

// LoopPoints marks a seamless repeat region in samples.
type LoopPoints struct {
	Start uint64
	End   uint64
}

// Valid reports whether the end point comes after the start point.
func (l LoopPoints) Valid() bool {
	return l.End > l.Start
}

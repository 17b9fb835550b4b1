package pcm

import "math"

// TargetRateFor returns the encoder sample rate to use for a source recorded
// at rate hz. The lopus format only supports these sample rates, and the
// thresholds are deliberately kept as the literal conditional chain rather
// than a rounding formula.
func TargetRateFor(rate int) int {
	switch {
	case rate <= 8000:
		return 8000
	case rate <= 12000:
		return 12000
	case rate <= 16000:
		return 16000
	case rate <= 24000:
		return 24000
	default:
		return 48000
	}
}

// Resample converts b to targetRate using cubic interpolation over each
// channel. The channel count and ordering are preserved, and the duration is
// preserved to within one output sample. A buffer already at targetRate is
// returned as-is.
func Resample(b *Buffer, targetRate int) *Buffer {
	if b.SampleRate == targetRate || b.SampleRate == 0 {
		return b
	}

	channels := b.Channels
	frames := b.FrameCount()
	ratio := float64(b.SampleRate) / float64(targetRate)
	outFrames := int(math.Round(float64(frames) * float64(targetRate) / float64(b.SampleRate)))
	out := make([]int16, outFrames*channels)

	frame := func(i, c int) float64 {
		if i < 0 {
			i = 0
		}
		if i >= frames {
			i = frames - 1
		}
		return float64(b.Samples[i*channels+c])
	}

	for i := 0; i < outFrames; i++ {
		pos := float64(i) * ratio
		i1 := int(pos)
		t := pos - float64(i1)
		for c := 0; c < channels; c++ {
			y0 := frame(i1-1, c)
			y1 := frame(i1, c)
			y2 := frame(i1+1, c)
			y3 := frame(i1+2, c)
			out[i*channels+c] = clampInt16(cubicInterpolate(y0, y1, y2, y3, t))
		}
	}

	return &Buffer{Samples: out, Channels: channels, SampleRate: targetRate}
}

// Catmull-Rom interpolation between y1 and y2.
func cubicInterpolate(y0, y1, y2, y3, t float64) float64 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2.0*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1
	return ((a0*t+a1)*t+a2)*t + a3
}

func clampInt16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

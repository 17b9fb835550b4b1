package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nus3kit/nus3kit/pkg/pcm"
)

func toneBuffer(frames, channels, rate int) *pcm.Buffer {
	buf := &pcm.Buffer{
		Samples:    make([]int16, frames*channels),
		Channels:   channels,
		SampleRate: rate,
	}
	for f := 0; f < frames; f++ {
		v := int16(8000 * math.Sin(2*math.Pi*220*float64(f)/float64(rate)))
		for c := 0; c < channels; c++ {
			buf.Samples[f*channels+c] = v
		}
	}
	return buf
}

func TestEncodingString(t *testing.T) {
	testCases := []struct {
		enc      Encoding
		expected string
	}{
		{Bin, "bin"},
		{Idsp, "idsp"},
		{Lopus, "lopus"},
		{Wav, "wav"},
		{Ogg, "ogg"},
		{Flac, "flac"},
		{Mp3, "mp3"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.enc.String())
	}
}

func TestFromExtension(t *testing.T) {
	assert.Equal(t, Idsp, FromExtension("idsp"))
	assert.Equal(t, Idsp, FromExtension(".idsp"))
	assert.Equal(t, Lopus, FromExtension(".LOPUS"))
	assert.Equal(t, Wav, FromExtension("wav"))
	assert.Equal(t, Mp3, FromExtension(".mp3"))
	assert.Equal(t, Bin, FromExtension(".exe"))
	assert.Equal(t, Bin, FromExtension(""))
}

func TestEncodingKinds(t *testing.T) {
	assert.True(t, Idsp.External())
	assert.True(t, Lopus.External())
	assert.False(t, Wav.External())
	assert.False(t, Bin.External())

	assert.True(t, Wav.CanDecode())
	assert.True(t, Ogg.CanDecode())
	assert.True(t, Flac.CanDecode())
	assert.True(t, Mp3.CanDecode())
	assert.False(t, Idsp.CanDecode())
	assert.False(t, Bin.CanDecode())
}

func TestWAVRoundTrip(t *testing.T) {
	buf := toneBuffer(4800, 2, 48000)

	data, err := EncodeWAV(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "RIFF", string(data[:4]))

	out, err := DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, buf.Channels, out.Channels)
	assert.Equal(t, buf.SampleRate, out.SampleRate)
	assert.Equal(t, buf.Samples, out.Samples)
}

func TestWAVRoundTripMono(t *testing.T) {
	buf := toneBuffer(1000, 1, 24000)

	data, err := EncodeWAV(buf, 0)
	require.NoError(t, err)

	out, err := DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Channels)
	assert.Equal(t, 24000, out.SampleRate)
	assert.Equal(t, buf.Samples, out.Samples)
}

func TestEncodeWAVSampleLimit(t *testing.T) {
	buf := toneBuffer(4800, 2, 48000)

	data, err := EncodeWAV(buf, 100)
	require.NoError(t, err)

	out, err := DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, 100, out.FrameCount())
	assert.Equal(t, buf.Samples[:200], out.Samples)
}

func TestEncodeWAVSampleLimitBeyondLength(t *testing.T) {
	buf := toneBuffer(100, 1, 48000)

	data, err := EncodeWAV(buf, 5000)
	require.NoError(t, err)

	out, err := DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, 100, out.FrameCount())
}

func TestEncodeWAVRejectsInvalidBuffers(t *testing.T) {
	_, err := EncodeWAV(&pcm.Buffer{Samples: []int16{1, 2}, Channels: 3, SampleRate: 48000}, 0)
	assert.ErrorIs(t, err, pcm.ErrChannelCount)

	_, err = EncodeWAV(&pcm.Buffer{Samples: []int16{1, 2, 3}, Channels: 2, SampleRate: 48000}, 0)
	assert.ErrorIs(t, err, pcm.ErrRaggedBuffer)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("this is not audio, not even close"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDecodeSniffsWAV(t *testing.T) {
	buf := toneBuffer(500, 2, 44100)
	data, err := EncodeWAV(buf, 0)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, buf.Samples, out.Samples)
}

func TestDecodeWAVRejectsTruncatedHeader(t *testing.T) {
	_, err := DecodeWAV([]byte("RIFF\x00\x00\x00\x00WAVE"))
	assert.Error(t, err)
}

func TestEncodeMP3ProducesFrames(t *testing.T) {
	buf := toneBuffer(48000, 2, 48000)

	data, err := EncodeMP3(buf)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// An MP3 stream starts with a frame sync of eleven set bits.
	assert.Equal(t, byte(0xFF), data[0])
	assert.Equal(t, byte(0xE0), data[1]&0xE0)
}

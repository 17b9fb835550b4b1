package pcm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name string
		buf  Buffer
		err  error
	}{
		{
			name: "mono",
			buf:  Buffer{Samples: []int16{1, 2, 3}, Channels: 1, SampleRate: 48000},
		},
		{
			name: "stereo",
			buf:  Buffer{Samples: []int16{1, 2, 3, 4}, Channels: 2, SampleRate: 48000},
		},
		{
			name: "zero channels",
			buf:  Buffer{Samples: []int16{1, 2}, Channels: 0, SampleRate: 48000},
			err:  ErrChannelCount,
		},
		{
			name: "ragged stereo",
			buf:  Buffer{Samples: []int16{1, 2, 3}, Channels: 2, SampleRate: 48000},
			err:  ErrRaggedBuffer,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.buf.Validate()
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFrameCountAndDuration(t *testing.T) {
	buf := &Buffer{
		Samples:    make([]int16, 48000*2),
		Channels:   2,
		SampleRate: 48000,
	}
	assert.Equal(t, 48000, buf.FrameCount())
	assert.Equal(t, time.Second, buf.Duration())
}

func TestNormalizeChannels(t *testing.T) {
	t.Run("mono and stereo pass through", func(t *testing.T) {
		mono := &Buffer{Samples: []int16{1, 2, 3}, Channels: 1, SampleRate: 48000}
		assert.Same(t, mono, NormalizeChannels(mono))

		stereo := &Buffer{Samples: []int16{1, 2, 3, 4}, Channels: 2, SampleRate: 48000}
		assert.Same(t, stereo, NormalizeChannels(stereo))
	})

	t.Run("quad collapses to stereo", func(t *testing.T) {
		// One frame: channels 0 and 2 average into the left sample,
		// channels 1 and 3 into the right.
		buf := &Buffer{
			Samples:    []int16{100, 200, 300, 400},
			Channels:   4,
			SampleRate: 48000,
		}
		out := NormalizeChannels(buf)
		require.Equal(t, 2, out.Channels)
		require.Equal(t, 1, out.FrameCount())
		assert.Equal(t, []int16{200, 300}, out.Samples)
	})

	t.Run("5.1 collapses to stereo", func(t *testing.T) {
		buf := &Buffer{
			Samples:    []int16{60, 0, 60, 0, 60, 0, 90, 30, 90, 30, 90, 30},
			Channels:   6,
			SampleRate: 48000,
		}
		out := NormalizeChannels(buf)
		require.Equal(t, 2, out.Channels)
		require.Equal(t, 2, out.FrameCount())
		assert.Equal(t, []int16{60, 0, 90, 30}, out.Samples)
	})
}

func TestLoopPointsValid(t *testing.T) {
	assert.True(t, (&LoopPoints{Start: 0, End: 1}).Valid())
	assert.True(t, (&LoopPoints{Start: 100, End: 4800}).Valid())
	assert.False(t, (&LoopPoints{Start: 10, End: 10}).Valid())
	assert.False(t, (&LoopPoints{Start: 10, End: 5}).Valid())
}

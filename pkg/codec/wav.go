package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nus3kit/nus3kit/pkg/pcm"
)

// ErrEncodeBin is returned when asked to encode to bin, which is not a real
// encoding.
var ErrEncodeBin = errors.New("codec: can't encode to bin, which is not a real encoding")

// EncodeWAV writes buf as a canonical 16-bit PCM WAV byte stream. If
// sampleLimit is greater than zero, only the first sampleLimit samples per
// channel are written, clamped to the buffer length. That is how audio is
// truncated to its loop end-point on export.
func EncodeWAV(buf *pcm.Buffer, sampleLimit int) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	frames := buf.FrameCount()
	if sampleLimit > 0 && sampleLimit < frames {
		frames = sampleLimit
	}

	data := make([]int, frames*buf.Channels)
	for i := range data {
		data[i] = int(buf.Samples[i])
	}

	intBuf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: buf.SampleRate, NumChannels: buf.Channels},
		SourceBitDepth: 16,
	}

	out := &writeSeekBuffer{}
	encoder := wav.NewEncoder(out, buf.SampleRate, 16, buf.Channels, 1)
	if err := encoder.Write(intBuf); err != nil {
		return nil, fmt.Errorf("writing wav data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("finalizing wav stream: %w", err)
	}

	return out.buf, nil
}

// writeSeekBuffer is an in-memory io.WriteSeeker. The wav encoder seeks back
// to patch chunk sizes, so a plain bytes.Buffer won't do.
type writeSeekBuffer struct {
	buf []byte
	pos int64
}

func (w *writeSeekBuffer) Write(p []byte) (int, error) {
	end := w.pos + int64(len(p))
	if end > int64(len(w.buf)) {
		grown := make([]byte, end)
		copy(grown, w.buf)
		w.buf = grown
	}
	copy(w.buf[w.pos:end], p)
	w.pos = end
	return len(p), nil
}

func (w *writeSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = w.pos + offset
	case io.SeekEnd:
		next = int64(len(w.buf)) + offset
	default:
		return 0, fmt.Errorf("unknown seek whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("seek before start of buffer")
	}
	w.pos = next
	return next, nil
}

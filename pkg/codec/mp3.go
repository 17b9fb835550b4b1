package codec

import (
	"bytes"
	"fmt"

	mp3encoder "github.com/braheezy/shine-mp3/pkg/mp3"

	"github.com/nus3kit/nus3kit/pkg/pcm"
)

// EncodeMP3 encodes buf as an MP3 byte stream. Used when exporting entries in
// a shareable format rather than the WAV intermediate.
func EncodeMP3(buf *pcm.Buffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	encoder := mp3encoder.NewEncoder(buf.SampleRate, buf.Channels)
	if err := encoder.Write(&out, buf.Samples); err != nil {
		return nil, fmt.Errorf("encoding mp3: %w", err)
	}

	return out.Bytes(), nil
}

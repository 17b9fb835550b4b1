package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"

	"github.com/nus3kit/nus3kit/pkg/pcm"
)

var (
	// ErrUnsupported means the bytes could not be decoded as any known audio
	// codec. Callers treat this as "opaque binary", not as a fatal error.
	ErrUnsupported = errors.New("codec: not in a supported audio format")
	// ErrBadBitDepth means a WAV stream did not carry 16-bit samples where
	// the tool contract requires them.
	ErrBadBitDepth = errors.New("codec: wav stream is not 16-bit")
)

// Decode sniffs data and decodes it into a PCM buffer. WAV, OGG Vorbis, FLAC
// and MP3 are supported; anything else fails with ErrUnsupported.
func Decode(data []byte) (*pcm.Buffer, error) {
	switch {
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("RIFF")):
		return decodeWAV(data, false)
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")):
		return decodeOGG(data)
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("fLaC")):
		return decodeFLAC(data)
	default:
		// MP3 has no dependable magic, so it is the fallback attempt.
		buf, err := decodeMP3(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return buf, nil
	}
}

// DecodeWAV parses a canonical PCM WAV stream, requiring 16-bit samples.
// This is the strict path for WAV files produced by the external tools;
// anything off-contract is an error, not a recoverable decode failure.
func DecodeWAV(data []byte) (*pcm.Buffer, error) {
	return decodeWAV(data, true)
}

func decodeWAV(data []byte, strict bool) (*pcm.Buffer, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading wav header: %w", err)
	}
	if strict && decoder.BitDepth != 16 {
		return nil, fmt.Errorf("%w: found %d-bit", ErrBadBitDepth, decoder.BitDepth)
	}

	bytesPerSample := int(decoder.BitDepth / 8)
	if bytesPerSample == 0 {
		bytesPerSample = 2
	}
	estimated := decoder.PCMSize / bytesPerSample

	samples := make([]int16, 0, estimated)
	shift := int(decoder.BitDepth) - 16

	intBuf := &audio.IntBuffer{Data: make([]int, 4096), Format: decoder.Format()}
	for {
		n, err := decoder.PCMBuffer(intBuf)
		if err != nil {
			return nil, fmt.Errorf("decoding wav samples: %w", err)
		}
		if n == 0 {
			break
		}
		for _, v := range intBuf.Data[:n] {
			if shift > 0 {
				v >>= shift
			} else if shift < 0 {
				v <<= -shift
			}
			samples = append(samples, int16(v))
		}
	}

	format := decoder.Format()
	return &pcm.Buffer{
		Samples:    samples,
		Channels:   format.NumChannels,
		SampleRate: format.SampleRate,
	}, nil
}

func decodeOGG(data []byte) (*pcm.Buffer, error) {
	floats, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding ogg: %w", err)
	}

	samples := make([]int16, len(floats))
	for i, v := range floats {
		// Scale to int16 range
		samples[i] = int16(v * 32767.0)
	}

	return &pcm.Buffer{
		Samples:    samples,
		Channels:   format.Channels,
		SampleRate: format.SampleRate,
	}, nil
}

func decodeFLAC(data []byte) (*pcm.Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening flac stream: %w", err)
	}
	defer stream.Close()

	shift := int(stream.Info.BitsPerSample) - 16
	var samples []int16
	for {
		flacFrame, err := stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("parsing flac frame: %w", err)
		}
		for i := 0; i < flacFrame.Subframes[0].NSamples; i++ {
			for _, subframe := range flacFrame.Subframes {
				sample := subframe.Samples[i]
				if shift > 0 {
					sample >>= shift
				}
				samples = append(samples, int16(sample))
			}
		}
	}

	return &pcm.Buffer{
		Samples:    samples,
		Channels:   int(stream.Info.NChannels),
		SampleRate: int(stream.Info.SampleRate),
	}, nil
}

func decodeMP3(data []byte) (*pcm.Buffer, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	// go-mp3 always emits 16-bit little-endian stereo.
	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 stream: %w", err)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}

	return &pcm.Buffer{
		Samples:    samples,
		Channels:   2,
		SampleRate: decoder.SampleRate(),
	}, nil
}

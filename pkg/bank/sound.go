package bank

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nus3kit/nus3kit/pkg/codec"
	"github.com/nus3kit/nus3kit/pkg/pcm"
)

var (
	// ErrNotAFile is returned when an encoded buffer is too short to carry
	// a format magic.
	ErrNotAFile = errors.New("bank: not a valid file")
	// ErrEmptyAudio is returned when an operation needs audio and the sound
	// has none.
	ErrEmptyAudio = errors.New("bank: sound is empty")
	// ErrNotDecoded is returned when an operation needs PCM and the sound
	// is opaque binary.
	ErrNotDecoded = errors.New("bank: sound could not be decoded")
	// ErrBadLoopPoints is returned for loop ranges that don't fit the
	// audio.
	ErrBadLoopPoints = errors.New("bank: loop end must come after loop start and within the audio")
	// ErrBadExtension is returned when setting an extension the container
	// format can't hold.
	ErrBadExtension = errors.New("bank: extension must be idsp, lopus or bin")
	// ErrBinMismatch is returned when a sound's binary-ness and its target
	// extension disagree.
	ErrBinMismatch = errors.New("bank: bin sounds keep their bytes verbatim and real formats need decoded audio")
	// ErrUseFromEncoded is returned when already-encoded proprietary bytes
	// are fed to the in-process decode path.
	ErrUseFromEncoded = errors.New("bank: idsp/lopus data must be imported through the external tools")
)

// DetectEncoded sniffs the format of encoded container bytes. VGAudioCli
// creates lopus files without the header the container library expects, so
// anything that isn't IDSP-tagged is assumed to be lopus. Yes, this is a
// hack, and it stays: it is what keeps those files loadable.
func DetectEncoded(data []byte) (codec.Encoding, error) {
	if len(data) < 4 {
		return codec.Bin, ErrNotAFile
	}
	if bytes.Equal(data[:4], []byte("IDSP")) {
		return codec.Idsp, nil
	}
	return codec.Lopus, nil
}

// StateKind tags which representations a Sound currently holds.
type StateKind int

const (
	// StateEmpty: no audio has ever been loaded.
	StateEmpty StateKind = iota
	// StateOpaque: raw bytes that could not (or should not) be decoded.
	StateOpaque
	// StateDecoded: PCM only; encoding happens on demand at save time.
	StateDecoded
	// StateCached: PCM plus encoded bytes already matching the target
	// extension, so saving is free.
	StateCached
)

// Sound is one entry of a container, a small state machine over its encoded
// and decoded representations. Illegal combinations (bin with PCM, cached
// bytes without PCM) are unrepresentable through the exported mutators.
type Sound struct {
	// Name is the display name, also used for cache file names.
	Name string

	ext   codec.Encoding
	state StateKind
	raw   []byte
	buf   *pcm.Buffer
	loop  *pcm.LoopPoints
}

// NewSound returns an empty sound targeting the idsp format.
func NewSound(name string) *Sound {
	return &Sound{Name: name, ext: codec.Idsp, state: StateEmpty}
}

func (s *Sound) State() StateKind { return s.state }

func (s *Sound) Extension() codec.Encoding { return s.ext }

// PCM returns the decoded audio, or nil.
func (s *Sound) PCM() *pcm.Buffer { return s.buf }

// LoopPoints returns the loop range in samples, or nil.
func (s *Sound) LoopPoints() *pcm.LoopPoints { return s.loop }

// LengthInSamples returns the per-channel sample count of the decoded audio.
func (s *Sound) LengthInSamples() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.FrameCount()
}

func (s *Sound) SampleRate() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.SampleRate
}

func (s *Sound) Channels() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Channels
}

// SetAudioFromBytes attaches new audio decoded in-process from data:
// decode, collapse to mono/stereo, then resample to the nearest rate the
// lopus encoder accepts. Any previous loop points and cached encoded bytes
// are dropped.
func (s *Sound) SetAudioFromBytes(data []byte, enc codec.Encoding) error {
	if enc.External() {
		return ErrUseFromEncoded
	}
	if enc == codec.Bin {
		s.SetOpaque(data)
		return nil
	}

	buf, err := codec.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding replacement audio: %w", err)
	}
	buf = pcm.NormalizeChannels(buf)
	buf = pcm.Resample(buf, pcm.TargetRateFor(buf.SampleRate))

	s.buf = buf
	s.raw = nil
	s.loop = nil
	s.state = StateDecoded
	if s.ext == codec.Bin {
		s.ext = codec.Idsp
	}
	return nil
}

// SetOpaque stores data verbatim as non-audio.
func (s *Sound) SetOpaque(data []byte) {
	s.raw = data
	s.buf = nil
	s.loop = nil
	s.ext = codec.Bin
	s.state = StateOpaque
}

// SetLoopPoints sets or clears (with nil) the loop range, invalidating any
// cached encoded bytes. The end must come after the start and fit within the
// decoded audio.
func (s *Sound) SetLoopPoints(loop *pcm.LoopPoints) error {
	if loop != nil {
		if !loop.Valid() {
			return ErrBadLoopPoints
		}
		if s.buf == nil {
			return ErrNotDecoded
		}
		if loop.End > uint64(s.buf.FrameCount()) {
			return ErrBadLoopPoints
		}
	}
	s.loop = loop
	s.invalidateEncoded()
	return nil
}

// SetExtension retargets the sound's container format. Moving between bin
// and the real formats is rejected: binary data can't be encoded and decoded
// audio isn't binary.
func (s *Sound) SetExtension(ext codec.Encoding) error {
	if ext != codec.Idsp && ext != codec.Lopus && ext != codec.Bin {
		return ErrBadExtension
	}
	if ext == s.ext {
		return nil
	}
	if ext == codec.Bin && s.buf != nil {
		return ErrBinMismatch
	}
	if ext != codec.Bin && s.state == StateOpaque {
		return ErrBinMismatch
	}
	s.ext = ext
	s.invalidateEncoded()
	return nil
}

func (s *Sound) invalidateEncoded() {
	if s.state == StateCached {
		s.raw = nil
		s.state = StateDecoded
	}
}

// FromEncoded loads the sound from already-encoded IDSP or LOPUS bytes by
// writing them into the scratch cache and decoding them with the external
// tools. A failure to decode is not fatal: the bytes are kept verbatim as
// opaque binary so one bad entry can't block loading the rest of the
// container.
func (s *Sound) FromEncoded(ctx context.Context, t *Transcoder, bankName string, data []byte) error {
	enc, err := DetectEncoded(data)
	if err != nil {
		return err
	}

	dir, err := t.Cache.CleanDir(bankName)
	if err != nil {
		return fmt.Errorf("creating cache subdirectory: %w", err)
	}

	src := filepath.Join(dir, s.Name+"."+enc.String())
	if err := os.WriteFile(src, data, 0o644); err != nil {
		return fmt.Errorf("writing source file %s: %w", src, err)
	}

	wavBytes, err := t.decodeFile(ctx, src)
	if err != nil {
		t.logger().Warn(
			"could not decode entry, keeping its bytes directly; if this is not desired, make sure the file is a known format and is not corrupted",
			"sound", s.Name, "err", err)
		s.SetOpaque(data)
		return nil
	}

	buf, err := codec.DecodeWAV(wavBytes)
	if err != nil {
		// The tool claimed success but handed back something that isn't a
		// 16-bit PCM WAV.
		t.logger().Error("decode tool returned an unusable wav, keeping entry bytes directly",
			"sound", s.Name, "err", err)
		s.SetOpaque(data)
		return nil
	}

	// The WAV came pre-normalized from the tool; its header rates are
	// adopted as-is rather than run through the resample policy.
	s.ext = enc
	s.raw = data
	s.buf = buf
	s.loop = t.ProbeLoopPoints(ctx, src)
	s.state = StateCached
	return nil
}

// WAV returns the sound's audio as WAV bytes, truncated to sampleLimit
// samples per channel when sampleLimit is positive.
func (s *Sound) WAV(sampleLimit int) ([]byte, error) {
	switch s.state {
	case StateEmpty:
		return nil, ErrEmptyAudio
	case StateOpaque:
		return nil, ErrNotDecoded
	default:
		return codec.EncodeWAV(s.buf, sampleLimit)
	}
}

// LoopEnd returns the ending loop point, or zero when no loop is set.
func (s *Sound) LoopEnd() int {
	if s.loop == nil {
		return 0
	}
	return int(s.loop.End)
}

// EncodedBytes returns the bytes this sound contributes to the container,
// encoding through the external tools only when no still-valid encoded form
// is cached. The result is cached on the sound, so repeated saves cost
// nothing until the sound is modified again.
func (s *Sound) EncodedBytes(ctx context.Context, t *Transcoder, bankName string) ([]byte, error) {
	switch s.state {
	case StateEmpty:
		return nil, ErrEmptyAudio
	case StateOpaque, StateCached:
		if s.state == StateCached {
			t.logger().Debug("encoded audio already exists, returning it", "sound", s.Name)
		}
		return s.raw, nil
	}

	if s.ext == codec.Bin {
		return nil, codec.ErrEncodeBin
	}

	t.logger().Debug("encoded audio does not already exist, encoding it", "sound", s.Name)

	dir, err := t.Cache.CleanDir(bankName)
	if err != nil {
		return nil, fmt.Errorf("creating cache subdirectory: %w", err)
	}

	// Audio with loop points is truncated to the loop end before encoding;
	// the game never plays past it.
	wavBytes, err := codec.EncodeWAV(s.buf, s.LoopEnd())
	if err != nil {
		return nil, fmt.Errorf("encoding %s to wav: %w", s.Name, err)
	}

	src := filepath.Join(dir, s.Name+".wav")
	if err := os.WriteFile(src, wavBytes, 0o644); err != nil {
		return nil, fmt.Errorf("writing source file %s: %w", src, err)
	}

	dst := filepath.Join(dir, s.Name+"."+s.ext.String())
	if t.Converter == nil {
		return nil, fmt.Errorf("no encode tool is configured")
	}
	out, err := t.Converter.Convert(ctx, src, dst, s.loop)
	if err != nil {
		return nil, err
	}

	t.logger().Debug("encoded", "src", src, "dst", dst)

	s.raw = out
	s.state = StateCached
	return out, nil
}

// Package codec is a small codec abstraction so the rest of the program does
// not have to care which decoder or encoder is being used exactly. It turns
// compressed audio bytes into PCM buffers and PCM buffers into WAV (or MP3)
// byte streams. The proprietary formats are named here but always converted
// by external tools.
package codec

import "strings"

// Encoding identifies the format of an encoded byte buffer.
type Encoding int

const (
	// Bin marks data which could or should not be read as audio. It is a
	// resting state, never an encode target.
	Bin Encoding = iota
	// Idsp is a proprietary console format, handled by external tools.
	Idsp
	// Lopus is a proprietary opus-family console format, handled by
	// external tools.
	Lopus
	Wav
	Ogg
	Flac
	Mp3
)

func (e Encoding) String() string {
	switch e {
	case Idsp:
		return "idsp"
	case Lopus:
		return "lopus"
	case Wav:
		return "wav"
	case Ogg:
		return "ogg"
	case Flac:
		return "flac"
	case Mp3:
		return "mp3"
	default:
		return "bin"
	}
}

// CanDecode reports whether this encoding could be decoded in-process. This
// doesn't necessarily mean the decoding will be successful, just that an
// encoding of this type should be usable.
func (e Encoding) CanDecode() bool {
	switch e {
	case Wav, Ogg, Flac, Mp3:
		return true
	default:
		return false
	}
}

// External reports whether this encoding is converted by the external tools
// rather than in-process.
func (e Encoding) External() bool {
	return e == Idsp || e == Lopus
}

// FromExtension returns the Encoding for a file extension, with or without
// the leading dot. Unknown extensions map to Bin.
func FromExtension(ext string) Encoding {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "idsp":
		return Idsp
	case "lopus":
		return Lopus
	case "wav":
		return Wav
	case "ogg":
		return Ogg
	case "flac":
		return Flac
	case "mp3":
		return Mp3
	default:
		return Bin
	}
}

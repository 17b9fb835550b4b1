// Package nus3audio reads and writes the nus3audio container format: an
// ordered list of named, numbered sound entries. The payloads are opaque
// bytes here; transcoding them is somebody else's job.
package nus3audio

import (
	"bytes"
	"errors"
	"fmt"

	crunch "github.com/superwhiskers/crunch/v3"
)

// ErrMalformed is returned when the input does not parse as a nus3audio
// container.
var ErrMalformed = errors.New("nus3audio: malformed container")

// Entry is one sound record in a container.
type Entry struct {
	ID   uint32
	Name string
	Data []byte
}

const dataAlign = 0x10

// Parse reads a nus3audio container from data.
func Parse(data []byte) (entries []Entry, err error) {
	// crunch panics on out-of-bounds reads; a truncated container surfaces
	// as ErrMalformed instead.
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	if len(data) < 28 {
		return nil, fmt.Errorf("%w: too short", ErrMalformed)
	}

	buf := crunch.NewBuffer(data)
	if !bytes.Equal(buf.ReadBytesNext(4), []byte("NUS3")) {
		return nil, fmt.Errorf("%w: missing NUS3 magic", ErrMalformed)
	}
	buf.ReadU32LENext(1) // declared size, unused
	if !bytes.Equal(buf.ReadBytesNext(8), []byte("AUDIINDX")) {
		return nil, fmt.Errorf("%w: missing AUDIINDX section", ErrMalformed)
	}
	buf.ReadU32LENext(1) // AUDIINDX payload size, always 4
	count := buf.ReadU32LENext(1)[0]
	if int64(count) > int64(len(data)) {
		return nil, fmt.Errorf("%w: implausible entry count %d", ErrMalformed, count)
	}

	var (
		ids         []uint32
		nameOffsets []uint32
		dataOffsets []uint32 // interleaved (offset, size) pairs
	)
	for buf.ByteOffset()+8 <= int64(len(data)) {
		magic := string(buf.ReadBytesNext(4))
		size := int64(buf.ReadU32LENext(1)[0])
		if buf.ByteOffset()+size > int64(len(data)) {
			return nil, fmt.Errorf("%w: section %q overruns file", ErrMalformed, magic)
		}
		switch magic {
		case "TNID":
			ids = crunch.NewBuffer(buf.ReadBytesNext(size)).ReadU32LENext(size / 4)
		case "NMOF":
			nameOffsets = crunch.NewBuffer(buf.ReadBytesNext(size)).ReadU32LENext(size / 4)
		case "ADOF":
			dataOffsets = crunch.NewBuffer(buf.ReadBytesNext(size)).ReadU32LENext(size / 4)
		default:
			// TNNM is read through NMOF offsets, PACK through ADOF; JUNK
			// and anything unknown is skipped.
			buf.SeekByte(size, true)
		}
	}

	if len(dataOffsets) < int(count)*2 {
		return nil, fmt.Errorf("%w: ADOF section missing or short", ErrMalformed)
	}

	entries = make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		entry := Entry{ID: i}
		if int(i) < len(ids) {
			entry.ID = ids[i]
		}
		if int(i) < len(nameOffsets) {
			entry.Name = readName(data, nameOffsets[i])
		}
		off, size := dataOffsets[i*2], dataOffsets[i*2+1]
		if int64(off)+int64(size) > int64(len(data)) {
			return nil, fmt.Errorf("%w: entry %d data out of range", ErrMalformed, i)
		}
		entry.Data = append([]byte(nil), data[off:off+size]...)
		entries = append(entries, entry)
	}

	return entries, nil
}

func readName(data []byte, offset uint32) string {
	if int64(offset) >= int64(len(data)) {
		return ""
	}
	end := bytes.IndexByte(data[offset:], 0)
	if end < 0 {
		return string(data[offset:])
	}
	return string(data[offset : int(offset)+end])
}

// Write serializes entries into a nus3audio container. Entry ids are written
// as given; audio payloads are aligned to 16 bytes.
func Write(entries []Entry) []byte {
	count := len(entries)

	tnnmSize := 0
	for _, entry := range entries {
		tnnmSize += len(entry.Name) + 1
	}

	packSize := 0
	for _, entry := range entries {
		packSize += padded(len(entry.Data))
	}

	// NUS3 header plus AUDIINDX is 24 bytes; each later section carries an
	// 8-byte magic+size header.
	prePack := 24 + (8 + 4*count) + (8 + 4*count) + (8 + 8*count) + (8 + tnnmSize)
	junkSize := (dataAlign - (prePack+16)%dataAlign) % dataAlign
	packStart := prePack + 8 + junkSize + 8
	total := packStart + packSize

	buf := crunch.NewBuffer()
	buf.Grow(int64(total))

	buf.WriteBytesNext([]byte("NUS3"))
	buf.WriteU32LENext([]uint32{uint32(total - 8)})
	buf.WriteBytesNext([]byte("AUDIINDX"))
	buf.WriteU32LENext([]uint32{4, uint32(count)})

	buf.WriteBytesNext([]byte("TNID"))
	buf.WriteU32LENext([]uint32{uint32(4 * count)})
	for _, entry := range entries {
		buf.WriteU32LENext([]uint32{entry.ID})
	}

	tnnmPayload := 24 + (8 + 4*count) + (8 + 4*count) + (8 + 8*count) + 8
	buf.WriteBytesNext([]byte("NMOF"))
	buf.WriteU32LENext([]uint32{uint32(4 * count)})
	nameOffset := tnnmPayload
	for _, entry := range entries {
		buf.WriteU32LENext([]uint32{uint32(nameOffset)})
		nameOffset += len(entry.Name) + 1
	}

	buf.WriteBytesNext([]byte("ADOF"))
	buf.WriteU32LENext([]uint32{uint32(8 * count)})
	dataOffset := packStart
	for _, entry := range entries {
		buf.WriteU32LENext([]uint32{uint32(dataOffset), uint32(len(entry.Data))})
		dataOffset += padded(len(entry.Data))
	}

	buf.WriteBytesNext([]byte("TNNM"))
	buf.WriteU32LENext([]uint32{uint32(tnnmSize)})
	for _, entry := range entries {
		buf.WriteBytesNext(append([]byte(entry.Name), 0))
	}

	buf.WriteBytesNext([]byte("JUNK"))
	buf.WriteU32LENext([]uint32{uint32(junkSize)})
	buf.SeekByte(int64(junkSize), true)

	buf.WriteBytesNext([]byte("PACK"))
	buf.WriteU32LENext([]uint32{uint32(packSize)})
	for _, entry := range entries {
		buf.WriteBytesNext(entry.Data)
		buf.SeekByte(int64(padded(len(entry.Data))-len(entry.Data)), true)
	}

	return buf.Bytes()
}

func padded(n int) int {
	return (n + dataAlign - 1) / dataAlign * dataAlign
}

package bank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nus3kit/nus3kit/pkg/nus3audio"
)

// Bank is an open nus3audio container: an ordered list of sounds plus enough
// bookkeeping to save it back.
type Bank struct {
	// Name is the container file name, which also names its cache
	// subdirectory.
	Name string
	// Path is where the container was loaded from, empty for a new one.
	Path string
	Sounds []*Sound
	// Modified tracks unsaved changes.
	Modified bool
}

// New returns an empty bank.
func New(name string) *Bank {
	return &Bank{Name: name}
}

// Load opens the container at path, running every entry through the import
// pipeline. Entries that fail to decode are kept as opaque binary; only
// infrastructure failures (unreadable file, cache I/O) abort the load.
func Load(ctx context.Context, t *Transcoder, path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading container: %w", err)
	}

	entries, err := nus3audio.Parse(data)
	if err != nil {
		return nil, err
	}

	b := &Bank{Name: filepath.Base(path), Path: path}
	for _, entry := range entries {
		sound := NewSound(entry.Name)
		if len(entry.Data) > 0 {
			if err := sound.FromEncoded(ctx, t, b.Name, entry.Data); err != nil {
				return nil, fmt.Errorf("loading entry %q: %w", entry.Name, err)
			}
		}
		b.Sounds = append(b.Sounds, sound)
	}
	return b, nil
}

// Save writes the bank to path (or back to its own path when path is
// empty), encoding any sounds whose encoded bytes aren't already cached.
// Ids are reassigned sequentially. Empty sounds are written as zero-length
// entries.
func (b *Bank) Save(ctx context.Context, t *Transcoder, path string) error {
	if path == "" {
		path = b.Path
	}
	if path == "" {
		return errors.New("bank: no path has been set to save")
	}
	if ext := filepath.Ext(path); ext != ".nus3audio" {
		path = strings.TrimSuffix(path, ext) + ".nus3audio"
	}
	name := filepath.Base(path)

	entries := make([]nus3audio.Entry, 0, len(b.Sounds))
	for i, sound := range b.Sounds {
		data, err := sound.EncodedBytes(ctx, t, name)
		if errors.Is(err, ErrEmptyAudio) {
			t.logger().Warn("sound is empty, writing a zero-length entry", "sound", sound.Name)
			data = nil
		} else if err != nil {
			return fmt.Errorf("encoding %q: %w", sound.Name, err)
		}
		entries = append(entries, nus3audio.Entry{ID: uint32(i), Name: sound.Name, Data: data})
	}

	t.logger().Info("writing container", "name", name, "path", path)
	if err := os.WriteFile(path, nus3audio.Write(entries), 0o644); err != nil {
		return fmt.Errorf("writing container: %w", err)
	}

	b.Name = name
	b.Path = path
	b.Modified = false
	return nil
}

// Add appends a sound and marks the bank modified.
func (b *Bank) Add(sound *Sound) {
	b.Sounds = append(b.Sounds, sound)
	b.Modified = true
}

// Remove deletes the sound at index and marks the bank modified.
func (b *Bank) Remove(index int) error {
	if index < 0 || index >= len(b.Sounds) {
		return fmt.Errorf("bank: no sound at index %d", index)
	}
	b.Sounds = append(b.Sounds[:index], b.Sounds[index+1:]...)
	b.Modified = true
	return nil
}

// Find resolves an entry key, either a numeric index or a sound name, to an
// index.
func (b *Bank) Find(key string) (int, error) {
	if index, err := strconv.Atoi(key); err == nil {
		if index < 0 || index >= len(b.Sounds) {
			return 0, fmt.Errorf("bank: no sound at index %d", index)
		}
		return index, nil
	}
	for i, sound := range b.Sounds {
		if sound.Name == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("bank: no sound named %q", key)
}

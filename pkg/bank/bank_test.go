package bank

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nus3kit/nus3kit/pkg/codec"
	"github.com/nus3kit/nus3kit/pkg/nus3audio"
)

func TestBankSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.nus3audio")

	wav := toneWAV(t, 4800, 2, 48000)
	encoded := []byte("pretend idsp bytes, long enough to matter")
	conv := &fakeConverter{configured: true, encodeResult: encoded, decodeResult: wav}
	tc := newTestTranscoder(t, conv, nil)

	b := New("test.nus3audio")
	sound := NewSound("se_jump")
	require.NoError(t, sound.SetAudioFromBytes(wav, codec.Wav))
	b.Add(sound)
	b.Add(NewSound("se_empty"))

	require.NoError(t, b.Save(ctx, tc, path))
	assert.False(t, b.Modified)
	assert.Equal(t, path, b.Path)

	loaded, err := Load(ctx, tc, path)
	require.NoError(t, err)
	require.Len(t, loaded.Sounds, 2)

	// The encoded entry decodes back through the (fake) tools.
	assert.Equal(t, "se_jump", loaded.Sounds[0].Name)
	assert.Equal(t, StateCached, loaded.Sounds[0].State())
	assert.Equal(t, 4800, loaded.Sounds[0].LengthInSamples())

	// The empty entry stays empty.
	assert.Equal(t, "se_empty", loaded.Sounds[1].Name)
	assert.Equal(t, StateEmpty, loaded.Sounds[1].State())
}

func TestBankSaveReassignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ids.nus3audio")
	tc := newTestTranscoder(t, nil, nil)

	b := New("ids.nus3audio")
	for _, name := range []string{"one", "two", "three"} {
		s := NewSound(name)
		s.SetOpaque([]byte{0xDE, 0xAD, 0xBE, 0xEF})
		b.Add(s)
	}
	require.NoError(t, b.Remove(1))
	require.NoError(t, b.Save(ctx, tc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entries, err := nus3audio.Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0), entries[0].ID)
	assert.Equal(t, uint32(1), entries[1].ID)
	assert.Equal(t, "one", entries[0].Name)
	assert.Equal(t, "three", entries[1].Name)
}

func TestBankSaveForcesContainerExtension(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tc := newTestTranscoder(t, nil, nil)

	b := New("x")
	s := NewSound("blob")
	s.SetOpaque([]byte{1, 2, 3, 4})
	b.Add(s)

	require.NoError(t, b.Save(ctx, tc, filepath.Join(dir, "out.bin")))
	assert.FileExists(t, filepath.Join(dir, "out.nus3audio"))
	assert.Equal(t, "out.nus3audio", b.Name)
}

func TestBankSaveWithoutPath(t *testing.T) {
	tc := newTestTranscoder(t, nil, nil)
	err := New("unnamed").Save(context.Background(), tc, "")
	assert.Error(t, err)
}

func TestBankSaveAbortsOnEncodeFailure(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fail.nus3audio")
	tc := newTestTranscoder(t, nil, nil) // no converter: encoding must fail

	b := New("fail.nus3audio")
	s := NewSound("bgm")
	require.NoError(t, s.SetAudioFromBytes(toneWAV(t, 100, 1, 48000), codec.Wav))
	b.Add(s)

	err := b.Save(ctx, tc, path)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestBankLoadRejectsMalformedContainers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.nus3audio")
	require.NoError(t, os.WriteFile(path, []byte("this is not a container"), 0o644))

	tc := newTestTranscoder(t, nil, nil)
	_, err := Load(context.Background(), tc, path)
	assert.ErrorIs(t, err, nus3audio.ErrMalformed)
}

func TestBankLoadMissingFile(t *testing.T) {
	tc := newTestTranscoder(t, nil, nil)
	_, err := Load(context.Background(), tc, filepath.Join(t.TempDir(), "nope.nus3audio"))
	assert.Error(t, err)
}

func TestBankFind(t *testing.T) {
	b := New("x")
	b.Add(NewSound("se_jump"))
	b.Add(NewSound("se_land"))

	index, err := b.Find("se_land")
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	index, err = b.Find("0")
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	_, err = b.Find("se_missing")
	assert.Error(t, err)

	_, err = b.Find("5")
	assert.Error(t, err)

	_, err = b.Find("-1")
	assert.Error(t, err)
}

func TestBankAddRemove(t *testing.T) {
	b := New("x")
	b.Add(NewSound("a"))
	b.Add(NewSound("b"))
	b.Modified = false

	require.NoError(t, b.Remove(0))
	assert.True(t, b.Modified)
	require.Len(t, b.Sounds, 1)
	assert.Equal(t, "b", b.Sounds[0].Name)

	assert.Error(t, b.Remove(5))
	assert.Error(t, b.Remove(-1))
}

package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/bank"
	"github.com/nus3kit/nus3kit/pkg/codec"
)

var replaceCmd = &cobra.Command{
	Use:   "replace <container> <entry> <audiofile>",
	Short: "Replace a sound's audio and save the container",
	Long: `Replace the audio of one sound. IDSP and LOPUS input goes through the
external tools; OGG, FLAC, WAV and MP3 are decoded in-process and resampled
to an encoder-supported rate. Anything else is stored as opaque binary.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t := newTranscoder()
		b, err := bank.Load(ctx, t, args[0])
		if err != nil {
			logger.Fatalf("Error opening container: %v", err)
		}

		index, err := b.Find(args[1])
		if err != nil {
			logger.Fatal(err)
		}

		if err := attachAudio(ctx, t, b, b.Sounds[index], args[2]); err != nil {
			logger.Fatalf("Error replacing audio: %v", err)
		}
		b.Modified = true

		if err := b.Save(ctx, t, ""); err != nil {
			logger.Fatalf("Error saving container: %v", err)
		}
	},
	DisableFlagsInUseLine: true,
}

// attachAudio loads the file at path into a sound, routed by extension the
// same way for replace, add and pack.
func attachAudio(ctx context.Context, t *bank.Transcoder, b *bank.Bank, s *bank.Sound, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	enc := codec.FromExtension(filepath.Ext(path))
	if enc.External() {
		return s.FromEncoded(ctx, t, b.Name, data)
	}
	if err := s.SetAudioFromBytes(data, enc); err != nil {
		if enc == codec.Bin {
			return err
		}
		logger.Warnf("Could not decode %s as audio, storing it as binary: %v", path, err)
		s.SetOpaque(data)
		return nil
	}

	// vgmstream can read loop tags straight out of the source file.
	if loop := t.ProbeLoopPoints(ctx, path); loop != nil {
		if err := s.SetLoopPoints(loop); err == nil {
			logger.Debug("Found loop points", "start", loop.Start, "end", loop.End)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(replaceCmd)
}

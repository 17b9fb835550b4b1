package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/bank"
	"github.com/nus3kit/nus3kit/pkg/codec"
)

var (
	extractDir     string
	extractEntry   string
	extractTo      string
	extractPreLoop bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <container>",
	Short: "Export sounds from a nus3audio container",
	Long: `Export all sounds, or one chosen with --entry, from a container.

Formats: wav (decoded audio), mp3 (decoded and re-encoded), raw (the stored
bytes, with their sniffed extension).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t := newTranscoder()
		b, err := bank.Load(ctx, t, args[0])
		if err != nil {
			logger.Fatalf("Error opening container: %v", err)
		}

		if err := os.MkdirAll(extractDir, 0o755); err != nil {
			logger.Fatalf("Error creating output directory: %v", err)
		}

		sounds := b.Sounds
		if extractEntry != "" {
			index, err := b.Find(extractEntry)
			if err != nil {
				logger.Fatal(err)
			}
			sounds = b.Sounds[index : index+1]
		}

		exported := 0
		for _, s := range sounds {
			path, err := extractSound(ctx, t, b, s)
			if err != nil {
				logger.Warnf("Skipping %s: %v", s.Name, err)
				continue
			}
			logger.Info("Exported", "sound", s.Name, "path", path)
			exported++
		}
		logger.Infof("Exported %d of %d sounds", exported, len(sounds))
	},
}

func extractSound(ctx context.Context, t *bank.Transcoder, b *bank.Bank, s *bank.Sound) (string, error) {
	var (
		data []byte
		name string
		err  error
	)

	switch extractTo {
	case "wav":
		limit := 0
		if extractPreLoop {
			limit = s.LoopEnd()
		}
		data, err = s.WAV(limit)
		name = s.Name + ".wav"
	case "mp3":
		if s.PCM() == nil {
			return "", bank.ErrNotDecoded
		}
		data, err = codec.EncodeMP3(s.PCM())
		name = s.Name + ".mp3"
	case "raw":
		data, err = s.EncodedBytes(ctx, t, b.Name)
		name = fmt.Sprintf("%s.%s", s.Name, s.Extension())
	default:
		return "", fmt.Errorf("unknown format %q", extractTo)
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(extractDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func init() {
	extractCmd.Flags().StringVarP(&extractDir, "out", "o", ".", "Output directory")
	extractCmd.Flags().StringVarP(&extractEntry, "entry", "e", "", "Export only this sound (index or name)")
	extractCmd.Flags().StringVar(&extractTo, "to", "wav", "Output format: wav, mp3 or raw")
	extractCmd.Flags().BoolVar(&extractPreLoop, "pre-loop", false, "Truncate exported audio at the loop end-point")
	rootCmd.AddCommand(extractCmd)
}

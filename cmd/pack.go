package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/bank"
	"github.com/nus3kit/nus3kit/pkg/codec"
)

var packFormat string

var packCmd = &cobra.Command{
	Use:   "pack <out.nus3audio> <audiofile...>",
	Short: "Build a new container from audio files",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		target := codec.FromExtension(packFormat)
		if !target.External() {
			logger.Fatalf("Unknown target format %q, expected idsp or lopus", packFormat)
		}

		ctx := context.Background()
		t := newTranscoder()

		out := args[0]
		b := bank.New(filepath.Base(out))
		for _, path := range args[1:] {
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			sound := bank.NewSound(name)
			if err := attachAudio(ctx, t, b, sound, path); err != nil {
				logger.Fatalf("Error loading %s: %v", path, err)
			}
			if sound.State() == bank.StateDecoded {
				if err := sound.SetExtension(target); err != nil {
					logger.Fatal(err)
				}
			}
			b.Add(sound)
		}

		if err := b.Save(ctx, t, out); err != nil {
			logger.Fatalf("Error writing container: %v", err)
		}
	},
}

func init() {
	packCmd.Flags().StringVar(&packFormat, "format", "idsp", "Encode target for decoded audio: idsp or lopus")
	rootCmd.AddCommand(packCmd)
}

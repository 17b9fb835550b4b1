package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/bank"
	"github.com/nus3kit/nus3kit/pkg/pcm"
)

var loopClear bool

var loopCmd = &cobra.Command{
	Use:   "loop <container> <entry> [<start> <end>]",
	Short: "Set or clear a sound's loop points",
	Long: `Set the loop range of a sound in samples, or clear it with --clear.
The end point must come after the start point and fit within the audio.`,
	Args: cobra.RangeArgs(2, 4),
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
		sound := b.Sounds[index]

		switch {
		case loopClear:
			if err := sound.SetLoopPoints(nil); err != nil {
				logger.Fatal(err)
			}
		case len(args) == 4:
			start, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				logger.Fatalf("Invalid loop start %q: %v", args[2], err)
			}
			end, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				logger.Fatalf("Invalid loop end %q: %v", args[3], err)
			}
			if err := sound.SetLoopPoints(&pcm.LoopPoints{Start: start, End: end}); err != nil {
				logger.Fatal(err)
			}
		default:
			logger.Fatal("Provide a start and end, or --clear")
		}
		b.Modified = true

		if err := b.Save(ctx, t, ""); err != nil {
			logger.Fatalf("Error saving container: %v", err)
		}
	},
}

func init() {
	loopCmd.Flags().BoolVar(&loopClear, "clear", false, "Remove the loop points")
	rootCmd.AddCommand(loopCmd)
}

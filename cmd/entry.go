package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/bank"
)

var addCmd = &cobra.Command{
	Use:   "add <container> <name> [audiofile]",
	Short: "Add a sound to a container",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t := newTranscoder()
		b, err := bank.Load(ctx, t, args[0])
		if err != nil {
			logger.Fatalf("Error opening container: %v", err)
		}

		sound := bank.NewSound(args[1])
		if len(args) == 3 {
			if err := attachAudio(ctx, t, b, sound, args[2]); err != nil {
				logger.Fatalf("Error loading audio: %v", err)
			}
		}
		b.Add(sound)

		if err := b.Save(ctx, t, ""); err != nil {
			logger.Fatalf("Error saving container: %v", err)
		}
	},
	DisableFlagsInUseLine: true,
}

var removeCmd = &cobra.Command{
	Use:   "remove <container> <entry>",
	Short: "Remove a sound from a container",
	Args:  cobra.ExactArgs(2),
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
		if err := b.Remove(index); err != nil {
			logger.Fatal(err)
		}

		if err := b.Save(ctx, t, ""); err != nil {
			logger.Fatalf("Error saving container: %v", err)
		}
	},
	DisableFlagsInUseLine: true,
}

var renameCmd = &cobra.Command{
	Use:   "rename <container> <entry> <newname>",
	Short: "Rename a sound",
	Args:  cobra.ExactArgs(3),
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
		b.Sounds[index].Name = args[2]
		b.Modified = true

		if err := b.Save(ctx, t, ""); err != nil {
			logger.Fatalf("Error saving container: %v", err)
		}
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(renameCmd)
}

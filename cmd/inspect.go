package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/bank"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "List the sounds in a nus3audio container",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t := newTranscoder()
		b, err := bank.Load(context.Background(), t, args[0])
		if err != nil {
			logger.Fatalf("Error opening container: %v", err)
		}

		var lines []string
		for i, s := range b.Sounds {
			lines = append(lines, describeSound(i, s))
		}

		title := bankTitleStyle.Render(fmt.Sprintf("%s (%d sounds)", b.Name, len(b.Sounds)))
		fmt.Println(bankStyle.Render(title + "\n\n" + strings.Join(lines, "\n")))
	},
	DisableFlagsInUseLine: true,
}

func describeSound(index int, s *bank.Sound) string {
	label := soundNameStyle.Render(fmt.Sprintf("%3d  %s.%s", index, s.Name, s.Extension()))

	switch s.State() {
	case bank.StateEmpty:
		return label + "  (Empty)"
	case bank.StateOpaque:
		return label + "  (Could not decode)"
	}

	detail := fmt.Sprintf("  %d Hz, %d ch, %d samples",
		s.SampleRate(), s.Channels(), s.LengthInSamples())
	if loop := s.LoopPoints(); loop != nil {
		detail += fmt.Sprintf(", loop %d-%d", loop.Start, loop.End)
	}
	if s.State() == bank.StateDecoded {
		detail += "  (Not yet encoded)"
	}
	return label + detail
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

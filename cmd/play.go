package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/bank"
	"github.com/nus3kit/nus3kit/pkg/pcm"
)

var playLoopFlag bool

var playCmd = &cobra.Command{
	Use:   "play <container> <entry>",
	Short: "Play a sound from a container",
	Long:  "Decode one sound through the transcoding pipeline and play it. With --loop and loop points set, playback repeats the loop region until interrupted.",
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
		sound := b.Sounds[index]
		buf := sound.PCM()
		if buf == nil {
			logger.Fatalf("%s has no decodable audio", sound.Name)
		}

		playBuffer(buf, sound.LoopPoints())
	},
}

func playBuffer(buf *pcm.Buffer, loop *pcm.LoopPoints) {
	// Set up clean exit handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Print("\nUser interrupted, exiting...\n")
		os.Exit(0)
	}()

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   buf.SampleRate,
		ChannelCount: buf.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		logger.Fatalf("Error creating audio context: %v", err)
	}
	<-ready

	data := pcmBytes(buf)
	var src io.Reader = bytes.NewReader(data)
	if playLoopFlag && loop != nil {
		src = newLoopReader(data, loop, buf.Channels)
	}

	fmt.Printf("Sample Rate: %d Hz, Channels: %d\n", buf.SampleRate, buf.Channels)
	fmt.Printf("Duration: %s\n", formatDuration(buf.Duration()))
	if playLoopFlag && loop != nil {
		fmt.Printf("Looping %d-%d, press Ctrl+C to quit\n", loop.Start, loop.End)
	}

	player := otoCtx.NewPlayer(src)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	fmt.Println("Playback complete")
}

func pcmBytes(buf *pcm.Buffer) []byte {
	out := make([]byte, len(buf.Samples)*2)
	for i, s := range buf.Samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// loopReader plays through the data once, then repeats the loop region
// forever. It never returns io.EOF.
type loopReader struct {
	data      []byte
	pos       int
	loopStart int
	loopEnd   int
}

func newLoopReader(data []byte, loop *pcm.LoopPoints, channels int) *loopReader {
	bytesPerFrame := channels * 2
	start := int(loop.Start) * bytesPerFrame
	end := int(loop.End) * bytesPerFrame
	if end > len(data) || end <= start {
		start, end = 0, len(data)
	}
	return &loopReader{data: data, loopStart: start, loopEnd: end}
}

func (r *loopReader) Read(p []byte) (int, error) {
	if r.pos >= r.loopEnd {
		r.pos = r.loopStart
	}
	n := copy(p, r.data[r.pos:r.loopEnd])
	r.pos += n
	return n, nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func init() {
	playCmd.Flags().BoolVar(&playLoopFlag, "loop", false, "Repeat the loop region until interrupted")
	rootCmd.AddCommand(playCmd)
}

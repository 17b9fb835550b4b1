package cmd

import (
	"github.com/nus3kit/nus3kit/pkg/bank"
	"github.com/nus3kit/nus3kit/pkg/cache"
	"github.com/nus3kit/nus3kit/pkg/settings"
	"github.com/nus3kit/nus3kit/pkg/vgtool"
)

var (
	flagVGAudioCli      string
	flagRuntime         string
	flagVgmstream       string
	flagPreferVgmstream bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVGAudioCli, "vgaudio-cli", "", "Path to VGAudioCli, overriding the settings file")
	rootCmd.PersistentFlags().StringVar(&flagRuntime, "runtime", "", "Runtime used to launch VGAudioCli (mono, dotnet, wine)")
	rootCmd.PersistentFlags().StringVar(&flagVgmstream, "vgmstream", "", "Path to vgmstream-cli, overriding the settings file")
	rootCmd.PersistentFlags().BoolVar(&flagPreferVgmstream, "prefer-vgmstream", false, "Prefer vgmstream over VGAudioCli when decoding")
}

// loadSettings reads the settings file and applies any command-line
// overrides on top.
func loadSettings() settings.Settings {
	path, err := settings.DefaultPath()
	if err != nil {
		logger.Fatalf("Error locating settings: %v", err)
	}

	s, err := settings.Load(path)
	if err != nil {
		logger.Warnf("Couldn't read settings, using defaults: %v", err)
	}

	if flagVGAudioCli != "" {
		s.VGAudioCliPath = flagVGAudioCli
	}
	if rootCmd.PersistentFlags().Changed("runtime") {
		s.VGAudioCliPrepath = flagRuntime
	}
	if flagVgmstream != "" {
		s.VgmstreamPath = flagVgmstream
	}
	if rootCmd.PersistentFlags().Changed("prefer-vgmstream") {
		s.PreferVgmstreamDecode = flagPreferVgmstream
	}
	return s
}

// newTranscoder builds the transcoding pipeline from settings and resets the
// cache root. A cache root that can't be reset is fatal: every later
// operation depends on a clean cache.
func newTranscoder() *bank.Transcoder {
	s := loadSettings()

	root, err := settings.DefaultCacheRoot()
	if err != nil {
		logger.Fatalf("Error locating cache directory: %v", err)
	}
	dir := cache.New(root)
	if err := dir.Reset(); err != nil {
		logger.Fatalf("Error resetting cache directory: %v", err)
	}

	return &bank.Transcoder{
		Cache:           dir,
		Converter:       &vgtool.Converter{Path: s.VGAudioCliPath, Prepath: s.VGAudioCliPrepath, Logger: logger},
		Prober:          &vgtool.Prober{Path: s.VgmstreamPath, Logger: logger},
		PreferVgmstream: s.PreferVgmstreamDecode,
		Logger:          logger,
	}
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nus3kit/nus3kit/pkg/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the external tool configuration",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := settings.DefaultPath()
		if err != nil {
			logger.Fatalf("Error locating settings: %v", err)
		}
		s, err := settings.Load(path)
		if err != nil {
			logger.Fatal(err)
		}

		fmt.Printf("%s\n\n", path)
		fmt.Printf("vgaudio_cli_path = %q\n", s.VGAudioCliPath)
		fmt.Printf("vgaudio_cli_prepath = %q\n", s.VGAudioCliPrepath)
		fmt.Printf("vgmstream_path = %q\n", s.VgmstreamPath)
		fmt.Printf("prefer_vgmstream_decode = %t\n", s.PreferVgmstreamDecode)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, err := settings.DefaultPath()
		if err != nil {
			logger.Fatalf("Error locating settings: %v", err)
		}
		s, err := settings.Load(path)
		if err != nil {
			logger.Fatal(err)
		}

		switch args[0] {
		case "vgaudio_cli_path":
			fmt.Println(s.VGAudioCliPath)
		case "vgaudio_cli_prepath":
			fmt.Println(s.VGAudioCliPrepath)
		case "vgmstream_path":
			fmt.Println(s.VgmstreamPath)
		case "prefer_vgmstream_decode":
			fmt.Println(s.PreferVgmstreamDecode)
		default:
			logger.Fatalf("Unknown key %q", args[0])
		}
	},
	DisableFlagsInUseLine: true,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration key",
	Long: `Change one key in the settings file. Keys:

  vgaudio_cli_path         path to the VGAudioCli executable
  vgaudio_cli_prepath      runtime used to launch it (mono, dotnet, wine)
  vgmstream_path           path to the vgmstream-cli executable
  prefer_vgmstream_decode  true/false, prefer vgmstream when decoding`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		path, err := settings.DefaultPath()
		if err != nil {
			logger.Fatalf("Error locating settings: %v", err)
		}
		s, err := settings.Load(path)
		if err != nil {
			logger.Fatal(err)
		}

		key, value := args[0], args[1]
		switch key {
		case "vgaudio_cli_path":
			s.VGAudioCliPath = value
		case "vgaudio_cli_prepath":
			s.VGAudioCliPrepath = value
		case "vgmstream_path":
			s.VgmstreamPath = value
		case "prefer_vgmstream_decode":
			b, err := strconv.ParseBool(value)
			if err != nil {
				logger.Fatalf("Invalid value %q for %s, expected true or false", value, key)
			}
			s.PreferVgmstreamDecode = b
		default:
			logger.Fatalf("Unknown key %q", key)
		}

		if err := s.Save(path); err != nil {
			logger.Fatalf("Error saving settings: %v", err)
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

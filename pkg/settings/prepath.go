//go:build !windows

package settings

import "os/exec"

const defaultVGAudioCliPath = "./VGAudioCli.exe"

// VGAudioCli is a .NET binary, so off Windows it needs a runtime in front.
// mono and dotnet are preferred over wine.
func defaultPrepath() string {
	if _, err := exec.LookPath("mono"); err == nil {
		return "mono"
	}
	if _, err := exec.LookPath("dotnet"); err == nil {
		return "dotnet"
	}
	return "wine"
}

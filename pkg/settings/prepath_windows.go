//go:build windows

package settings

const defaultVGAudioCliPath = ".\\VGAudioCli.exe"

// Windows runs .NET binaries directly; no launcher needed.
func defaultPrepath() string {
	return ""
}

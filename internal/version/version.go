package version

import "github.com/fatih/color"

// Version information for cargo-marker and the driver.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("4") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

const (
	// APIVersion is the version of the portable AST and the callback table.
	// A driver and the lint crates it loads must agree on it exactly.
	APIVersion = "0.4.0"

	// DefaultToolchain is the toolchain the driver is built against.
	DefaultToolchain = "nightly-2023-11-16"

	// DriverBinary is the file name of the driver executable.
	DriverBinary = "marker_rustc_driver"
)

// Plain returns Version without color escapes.
func Plain() string {
	return stripANSI(Version)
}

func stripANSI(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

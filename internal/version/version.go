package version

import "github.com/fatih/color"

// Version information for the jaotc CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Fingerprint renders the full build identity `jaotc version` prints:
// the semantic version, plus the commit (and its message, if any) and
// build date when those were set via -ldflags. GitMessage is only shown
// alongside a commit hash — a message with no commit to anchor it to is
// not meaningful on its own and is dropped.
func Fingerprint() string {
	out := Version
	if GitCommit != "" {
		out += " (" + GitCommit
		if GitMessage != "" {
			out += ": " + GitMessage
		}
		out += ")"
	}
	if BuildDate != "" {
		out += " built " + BuildDate
	}
	return out
}

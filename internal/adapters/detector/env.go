// Package detector picks the log rendering for the current environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is the rendering used for log records.
type OutputMode int

const (
	// ModeAuto defers to DetectEnvironment.
	ModeAuto OutputMode = iota
	// ModePretty renders coloured, human-oriented records.
	ModePretty
	// ModeText renders logfmt-style records.
	ModeText
	// ModeJSON renders one JSON object per record.
	ModeJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeText:
		return "text"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModePretty when stderr is a terminal outside CI, and ModeText otherwise.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeText
	}
	return ModePretty
}

// ResolveMode applies the --log-format flag on top of the detected mode.
// Unknown values fall back to the detected mode.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "text":
		return ModeText
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"marker/internal/version"
)

type versionInfo struct {
	Version          string
	APIVersion       string
	DefaultToolchain string
	GitCommit        string
	GitMessage       string
	BuildDate        string
}

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

type versionPayload struct {
	Tool             string `json:"tool"`
	Version          string `json:"version"`
	APIVersion       string `json:"api_version"`
	DefaultToolchain string `json:"default_toolchain"`
	GitCommit        string `json:"git_commit,omitempty"`
	GitMessage       string `json:"git_message,omitempty"`
	BuildDate        string `json:"build_date,omitempty"`
}

var (
	versionFormat      string
	versionShowHash    bool
	versionShowMessage bool
	versionShowDate    bool
	versionShowFull    bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMessage, "message", false, "include git commit message")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show cargo-marker version and the driver it expects",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := versionOptions{
			format:      strings.ToLower(versionFormat),
			showHash:    versionShowHash || versionShowFull,
			showMessage: versionShowMessage || versionShowFull,
			showDate:    versionShowDate || versionShowFull,
		}
		info := collectVersionInfo()
		switch opts.format {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		case "pretty":
			return renderVersionPretty(cmd.OutOrStdout(), info, opts)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Plain())
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:          v,
		APIVersion:       version.APIVersion,
		DefaultToolchain: version.DefaultToolchain,
		GitCommit:        strings.TrimSpace(version.GitCommit),
		GitMessage:       strings.TrimSpace(version.GitMessage),
		BuildDate:        strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) error {
	var b strings.Builder
	fmt.Fprintf(&b, "cargo-marker %s\n", info.Version)
	fmt.Fprintf(&b, "api:       %s\n", info.APIVersion)
	fmt.Fprintf(&b, "toolchain: %s\n", info.DefaultToolchain)
	if opts.showHash {
		fmt.Fprintf(&b, "commit:    %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(&b, "message:   %s\n", valueOrUnknown(info.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(&b, "built:     %s\n", valueOrUnknown(info.BuildDate))
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:             "cargo-marker",
		Version:          info.Version,
		APIVersion:       info.APIVersion,
		DefaultToolchain: info.DefaultToolchain,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

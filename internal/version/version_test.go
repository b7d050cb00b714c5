package version

import (
	"regexp"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if APIVersion == "" || DefaultToolchain == "" || DriverBinary == "" {
		t.Error("driver constants must not be empty")
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origGitCommit, origBuildDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origGitCommit, origBuildDate }()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Plain() != "1.2.3" {
		t.Errorf("Plain() = %q, want %q", Plain(), "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q", GitCommit)
	}
}

func TestPlainStripsColor(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	c := color.New(color.FgRed)
	c.EnableColor()
	Version = c.Sprint("0") + ".4." + c.Sprint("1")

	if got := Plain(); got != "0.4.1" {
		t.Errorf("Plain() = %q, want 0.4.1", got)
	}
}

func TestDefaultToolchainFormat(t *testing.T) {
	if !regexp.MustCompile(`^nightly-\d{4}-\d{2}-\d{2}$`).MatchString(DefaultToolchain) {
		t.Errorf("DefaultToolchain = %q, want nightly-YYYY-MM-DD", DefaultToolchain)
	}
	if !regexp.MustCompile(`^\d+\.\d+\.\d+$`).MatchString(APIVersion) {
		t.Errorf("APIVersion = %q, want MAJOR.MINOR.PATCH", APIVersion)
	}
}

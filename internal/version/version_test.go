package version_test

import (
	"strings"
	"testing"

	"jaotc/internal/version"
)

func withBuildInfo(t *testing.T, commit, message, date string) {
	t.Helper()
	origCommit, origMessage, origDate := version.GitCommit, version.GitMessage, version.BuildDate
	version.GitCommit, version.GitMessage, version.BuildDate = commit, message, date
	t.Cleanup(func() {
		version.GitCommit, version.GitMessage, version.BuildDate = origCommit, origMessage, origDate
	})
}

func TestFingerprintBareVersionOnly(t *testing.T) {
	withBuildInfo(t, "", "", "")
	got := version.Fingerprint()
	if got != version.Version {
		t.Fatalf("Fingerprint() = %q; want bare Version %q when no build info is set", got, version.Version)
	}
}

func TestFingerprintIncludesCommitAndMessage(t *testing.T) {
	withBuildInfo(t, "abc123", "fix layout cache key", "")
	got := version.Fingerprint()
	if !strings.Contains(got, "abc123") || !strings.Contains(got, "fix layout cache key") {
		t.Fatalf("Fingerprint() = %q; want it to include the commit and its message", got)
	}
}

func TestFingerprintIncludesBuildDateEvenWithoutCommit(t *testing.T) {
	withBuildInfo(t, "", "", "2026-08-06T00:00:00Z")
	got := version.Fingerprint()
	if !strings.Contains(got, "2026-08-06T00:00:00Z") {
		t.Fatalf("Fingerprint() = %q; want it to include the build date", got)
	}
}

func TestFingerprintOmitsMessageWhenCommitIsUnset(t *testing.T) {
	withBuildInfo(t, "", "orphaned message", "")
	got := version.Fingerprint()
	if strings.Contains(got, "orphaned message") {
		t.Fatalf("Fingerprint() = %q; a commit message with no commit hash should not be printed", got)
	}
}

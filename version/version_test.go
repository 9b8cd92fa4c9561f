package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit := Version, GitCommit
	return func() {
		Version, GitCommit = origVersion, origCommit
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	GitCommit = ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version dev, got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev build should not be a release")
	}
}

func TestGetRelease(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.3"
	GitCommit = "abcdef1234567"

	info := Get()
	if !info.IsRelease {
		t.Error("expected release build")
	}
	if info.GitCommit != "abcdef1" {
		t.Errorf("expected short commit, got %q", info.GitCommit)
	}
}

func TestGetDirtyVersionIsNotRelease(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0-dirty"

	if Get().IsRelease {
		t.Error("dirty version should not be a release")
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "1.0.0"}, "1.0.0"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestUserAgent(t *testing.T) {
	defer saveAndRestore()()
	Version = "2.0.0"

	ua := UserAgent()
	if !strings.HasPrefix(ua, "apiclient/2.0.0") {
		t.Errorf("unexpected user agent %q", ua)
	}
}

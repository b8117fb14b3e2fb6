package utils

import "testing"

func TestShortVersion(t *testing.T) {
	v := Version{Version: "0123456789abcdef0123456789abcdef01234567"}
	if got := v.ShortVersion(); got != "0123456" {
		t.Errorf("ShortVersion() = %q, want %q", got, "0123456")
	}

	v = Version{Version: "main"}
	if got := v.ShortVersion(); got != "main" {
		t.Errorf("ShortVersion() = %q, want %q", got, "main")
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion().Version == "" {
		t.Error("GetVersion() returned an empty version")
	}
}

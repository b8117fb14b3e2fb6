package utils

import "runtime/debug"

type Version struct {
	Version   string
	GoVersion string
}

// GetVersion returns the version of the running binary, derived from the VCS data embedded at build time
func GetVersion() (version Version) {
	// Defaults to main
	version.Version = "main"

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			// This returns the current git hash
			if setting.Key == "vcs.revision" {
				version.Version = setting.Value
			}

			// This would show us if the current git tree is modified from the hash
			if setting.Key == "vcs.modified" && setting.Value == "true" {
				version.Version += " (modified)"
			}
		}

		version.GoVersion = info.GoVersion
	}

	return version
}

// ShortVersion returns the first 7 characters of a commit hash version
func (v Version) ShortVersion() string {
	if len(v.Version) >= 40 {
		return v.Version[:7]
	}
	return v.Version
}

package snaptrace

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version of this tracer.
const Version = "0.13.2"

// supportedVersion reports whether v lies in [MinVersion, MaxVersion).
// Empty or malformed versions are unsupported.
func supportedVersion(v string) bool {
	sv := "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
	if !semver.IsValid(sv) {
		return false
	}
	return semver.Compare(sv, "v"+MinVersion) >= 0 && semver.Compare(sv, "v"+MaxVersion) < 0
}

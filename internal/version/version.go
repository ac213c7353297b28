// Package version exposes the build version stamped in via ldflags.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/nebstarmalala/securion-console/internal/version.Version=v1.2.3"
var Version = "dev"

// GetVersion returns the stamped build version.
func GetVersion() string {
	return Version
}

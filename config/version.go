package config

import "fmt"

// Set with -ldflags at build time
var (
	Version       = "dev"
	CommitHash    = "n/a"
	BuildTime     = "n/a"
	VersionString = fmt.Sprintf("nerlog %s-%s (%s)", Version, CommitHash, BuildTime)
)

// Package version holds the build version, set with -ldflags at release.
package version

// Version of the binary.
var Version = "dev"

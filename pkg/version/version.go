// Package version provides the pyflyby tool version.
package version

// Version is the pyflyby tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/ingo-eichhorst/pyflyby/pkg/version.Version=2.0.1"
var Version = "dev"

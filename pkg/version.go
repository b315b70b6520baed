// Package ecda holds data shared across the application.
package ecda

var (
	// Version is set by the build process using ldflags.
	Version = "v0.1.0"

	// Build is set by the build process to the build timestamp.
	Build = "n/a"
)

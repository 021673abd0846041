//go:build !darwin && !linux

package state

import "runtime"

// CurrentPlatform returns the platform the binary was built for.
func CurrentPlatform() Platform {
	return UnsupportedPlatform(runtime.GOOS)
}

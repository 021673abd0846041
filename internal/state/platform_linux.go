//go:build linux

package state

// CurrentPlatform returns the platform the binary was built for.
func CurrentPlatform() Platform {
	return LinuxPlatform()
}

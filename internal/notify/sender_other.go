//go:build !darwin && !linux && !windows

package notify

func localCommand(_ Payload) (string, []string, error) {
	return "", nil, ErrUnsupportedPlatform
}

package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// goos is swappable in tests.
var goos = func() string { return runtime.GOOS }

// OpenBrowser launches the system browser at url, dispatching on the host
// platform's opener command. Errors when the platform has no known opener.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch platform := goos(); platform {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
	case "windows":
		name, args = "cmd", []string{"/c", "start"}
	default:
		return fmt.Errorf("no browser opener for platform %s", platform)
	}

	args = append(args, url)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	return nil
}

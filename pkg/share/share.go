// Package share hands files to the platform share sheet or viewer.
package share

import (
	"fmt"
	"os/exec"
	"runtime"
)

// File offers a file through the platform share mechanism when one
// exists, otherwise opens it with the default viewer. Probing is cheap;
// an absent share command is not an error, only a missing viewer is.
func File(path, title string) error {
	// Termux exposes the Android share sheet as a command.
	if bin, err := exec.LookPath("termux-share"); err == nil {
		return run(bin, "-a", "send", "--title", title, path)
	}
	return Open(path)
}

// Open launches the default viewer for a file.
func Open(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return run("open", path)
	case "windows":
		return run("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		if bin, err := exec.LookPath("xdg-open"); err == nil {
			return run(bin, path)
		}
		return fmt.Errorf("share: no viewer available for %s", path)
	}
}

func run(bin string, args ...string) error {
	if err := exec.Command(bin, args...).Start(); err != nil {
		return fmt.Errorf("share: failed to launch %s: %w", bin, err)
	}
	return nil
}

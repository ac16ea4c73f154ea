//go:build linux

package keyhook

import (
	"fmt"
	"os"

	"KeyPulse/capture"
)

// checkPermission fails early when there is no X display to hook into.
func checkPermission() error {
	if os.Getenv("DISPLAY") == "" {
		return fmt.Errorf("%w: no X display (DISPLAY is unset)", capture.ErrCaptureFailed)
	}
	return nil
}

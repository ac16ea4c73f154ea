//go:build darwin

package keyhook

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

int isProcessTrusted() {
    return AXIsProcessTrusted() ? 1 : 0;
}
*/
import "C"

import (
	"fmt"

	"KeyPulse/capture"
)

// checkPermission fails when the process has not been granted Accessibility
// access, without which the event tap delivers nothing.
func checkPermission() error {
	if C.isProcessTrusted() == 1 {
		return nil
	}
	return fmt.Errorf("%w: %w: process is not trusted for Accessibility", capture.ErrCaptureFailed, capture.ErrPermissionDenied)
}

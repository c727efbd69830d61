//go:build windows

package deviceinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// osVersion reports major.minor.build without the compatibility shim that
// GetVersionEx applies.
func osVersion() string {
	v := windows.RtlGetVersion()
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}

//go:build !unix && !windows

package deviceinfo

func osVersion() string { return "" }

//go:build linux

package app

import "os/exec"

// platformOpen opens the file using 'xdg-open' (default application).
func platformOpen(path string) error {
	return exec.Command("xdg-open", path).Start()
}

// platformLaunch starts an app bundle. On Linux the bundle directory is
// handed to xdg-open, which dispatches on whatever launcher is registered.
func platformLaunch(path string) error {
	return exec.Command("xdg-open", path).Start()
}

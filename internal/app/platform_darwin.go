//go:build darwin

package app

import "os/exec"

// platformOpen opens the file using the macOS 'open' command.
func platformOpen(path string) error {
	return exec.Command("open", path).Start()
}

// platformLaunch starts an app bundle via 'open -a'.
func platformLaunch(path string) error {
	return exec.Command("open", "-a", path).Start()
}

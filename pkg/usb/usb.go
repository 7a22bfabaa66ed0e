// Package usb locates writable removable media for exports.
package usb

import (
	"os"
	"path/filepath"
)

// DefaultMountRoots are the directories probed for mounted removable media.
// /media/pi first because that is where the kiosk's automounter puts sticks.
var DefaultMountRoots = []string{"/media/pi", "/media"}

// FindMount returns the first writable directory found directly under one of
// the given roots. Writability is verified with a throwaway file because a
// read-only or stale mount still shows up as a directory.
func FindMount(roots []string) (string, bool) {
	if len(roots) == 0 {
		roots = DefaultMountRoots
	}
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			candidate := filepath.Join(root, entry.Name())
			if isWritable(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func isWritable(dir string) bool {
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return false
	}
	os.Remove(probe)
	return true
}

package selfupdate

import (
	"fmt"
	"os"
	"path/filepath"
)

// rename is swapped in tests to fail the final move.
var rename = os.Rename

// install replaces target with binary. The new file is staged next to
// target so the final rename stays on one filesystem, and the previous
// executable is kept as a backup until the swap succeeds.
func install(binary []byte, target string) (err error) {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".vatly-new-*")
	if err != nil {
		return fmt.Errorf("stage update: %w", err)
	}
	staged := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(staged)
		}
	}()

	if _, err := tmp.Write(binary); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write staged binary: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync staged binary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close staged binary: %w", err)
	}
	if err := os.Chmod(staged, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod staged binary: %w", err)
	}

	backup := filepath.Join(dir, "."+filepath.Base(target)+".old")
	_ = os.Remove(backup)
	if err := rename(target, backup); err != nil {
		return fmt.Errorf("back up %s: %w", target, err)
	}
	if err := rename(staged, target); err != nil {
		if rerr := rename(backup, target); rerr != nil {
			return fmt.Errorf("install failed (%w) and restoring %s failed: %w", err, target, rerr)
		}
		return fmt.Errorf("install: %w", err)
	}

	// A running Windows executable cannot be removed; the next update
	// clears the stale backup instead.
	_ = os.Remove(backup)
	return nil
}

package naming

import (
	"errors"
	"io/fs"
	"os"
)

// linkRename moves src to dst by hard-linking then unlinking. os.Link fails
// with EEXIST atomically, so an existing dst is never replaced. Filesystems
// without hard links fall back to checkedRename.
func linkRename(src, dst string) error {
	if err := os.Link(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return err
		}
		return checkedRename(src, dst)
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// checkedRename is the last resort: check, then rename. Racy under
// concurrent external writers.
func checkedRename(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}

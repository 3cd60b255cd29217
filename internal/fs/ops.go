package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/finchapp/finch/internal/debug"
)

const (
	dirPermission  = 0o755
	filePermission = 0o644
)

var errNotDir = errors.New("not a directory")

// PathExists checks if a path exists on the filesystem.
func PathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Move relocates src to dst. dst must not exist. Rename is attempted first;
// a cross-device failure falls back to copy-then-delete.
func Move(src, dst string) error {
	if PathExists(dst) {
		return &MoveError{Source: src, Dest: dst, Err: os.ErrExist}
	}

	if err := os.Rename(src, dst); err == nil {
		debug.Log(debug.FS, "Move: renamed %q -> %q", src, dst)
		return nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return &MoveError{Source: src, Dest: dst, Err: err}
	}

	if info.IsDir() {
		err = copyDir(src, dst)
	} else {
		err = copyFile(src, dst, info.Mode())
	}
	if err != nil {
		return &MoveError{Source: src, Dest: dst, Err: err}
	}

	if err := deleteItem(src); err != nil {
		return &MoveError{Source: src, Dest: dst, Err: err}
	}
	debug.Log(debug.FS, "Move: copied %q -> %q across devices", src, dst)
	return nil
}

// Replace substitutes the existing dst with src. Files are renamed over the
// destination, which replaces atomically on POSIX filesystems; directories
// are removed first since rename cannot overwrite a non-empty directory.
func Replace(src, dst string) error {
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return &ReplaceError{Source: src, Dest: dst, Err: err}
	}

	if dstInfo.IsDir() {
		if err := deleteItem(dst); err != nil {
			return &ReplaceError{Source: src, Dest: dst, Err: err}
		}
	}

	if err := os.Rename(src, dst); err == nil {
		debug.Log(debug.FS, "Replace: %q over %q", src, dst)
		return nil
	}

	// Cross-device: stage next to the destination, then rename into place.
	srcInfo, err := os.Stat(src)
	if err != nil {
		return &ReplaceError{Source: src, Dest: dst, Err: err}
	}
	if err := replaceByStaging(src, dst, srcInfo); err != nil {
		return &ReplaceError{Source: src, Dest: dst, Err: err}
	}
	debug.Log(debug.FS, "Replace: copied %q over %q across devices", src, dst)
	return nil
}

// replaceByStaging copies src to a sibling of dst and renames it into
// place. The staged copy shares dst's filesystem, so for files the rename
// overwrites atomically and dst is never missing in between.
func replaceByStaging(src, dst string, srcInfo os.FileInfo) error {
	tmp := dst + ".finch-replace"
	var err error
	if srcInfo.IsDir() {
		err = copyDir(src, tmp)
	} else {
		err = copyFile(src, tmp, srcInfo.Mode())
	}
	if err != nil {
		os.RemoveAll(tmp)
		return err
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	return deleteItem(src)
}

// deleteItem removes a file or directory (recursively for directories).
func deleteItem(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

func copyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermission)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return os.Chmod(dst, mode)
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	children, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, child := range children {
		srcPath := filepath.Join(src, child.Name())
		dstPath := filepath.Join(dst, child.Name())
		info, err := child.Info()
		if err != nil {
			return err
		}
		if child.IsDir() {
			err = copyDir(srcPath, dstPath)
		} else {
			err = copyFile(srcPath, dstPath, info.Mode())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Package fsutil implements recursive copying on top of the types.FS
// interface. Copies are whole-file replacements: no merging, no
// diffing, source mode preserved.
package fsutil

import (
	"io/fs"
	"path/filepath"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/types"
)

// Copy copies src to dst, dispatching on the source kind: regular files
// are copied byte-for-byte with their mode, symlinks are recreated
// pointing at the same target, directories are copied recursively.
// dst's parent must already exist.
func Copy(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return copySymlink(fsys, src, dst)
	case info.IsDir():
		return CopyTree(fsys, src, dst)
	default:
		return CopyFile(fsys, src, dst, info.Mode().Perm())
	}
}

// CopyFile copies a regular file's contents with the given permissions.
func CopyFile(fsys types.FS, src, dst string, perm fs.FileMode) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}
	if err := fsys.WriteFile(dst, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to write %s", dst)
	}
	return nil
}

// CopyTree recursively copies the directory src to dst, creating dst.
func CopyTree(fsys types.FS, src, dst string) error {
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}
	if err := fsys.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if err := Copy(fsys, srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

func copySymlink(fsys types.FS, src, dst string) error {
	target, err := fsys.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", src)
	}
	if err := fsys.Symlink(target, dst); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create link %s", dst)
	}
	return nil
}

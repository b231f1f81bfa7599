package testutil

import (
	"io/fs"
	"strings"

	"github.com/confsync/confsync/pkg/types"
)

// Fault describes one injected failure: operations named Op touching a
// path under PathPrefix return Err instead of reaching the base
// filesystem.
type Fault struct {
	Op         string // "stat", "readfile", "writefile", "mkdirall", ...
	PathPrefix string
	Err        error
}

// FaultFS wraps a types.FS and fails configured operations. Everything
// else passes through, so tests run against a real temp-dir filesystem
// with surgical failures.
type FaultFS struct {
	Base   types.FS
	Faults []Fault
}

// NewFaultFS wraps base with the given faults.
func NewFaultFS(base types.FS, faults ...Fault) *FaultFS {
	return &FaultFS{Base: base, Faults: faults}
}

func (f *FaultFS) check(op, path string) error {
	for _, fault := range f.Faults {
		if fault.Op == op && strings.HasPrefix(path, fault.PathPrefix) {
			return fault.Err
		}
	}
	return nil
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check("stat", name); err != nil {
		return nil, err
	}
	return f.Base.Stat(name)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.check("lstat", name); err != nil {
		return nil, err
	}
	return f.Base.Lstat(name)
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.check("readfile", name); err != nil {
		return nil, err
	}
	return f.Base.ReadFile(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check("writefile", name); err != nil {
		return err
	}
	return f.Base.WriteFile(name, data, perm)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check("mkdirall", path); err != nil {
		return err
	}
	return f.Base.MkdirAll(path, perm)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check("readdir", name); err != nil {
		return nil, err
	}
	return f.Base.ReadDir(name)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.check("symlink", newname); err != nil {
		return err
	}
	return f.Base.Symlink(oldname, newname)
}

func (f *FaultFS) Readlink(name string) (string, error) {
	if err := f.check("readlink", name); err != nil {
		return "", err
	}
	return f.Base.Readlink(name)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.check("remove", name); err != nil {
		return err
	}
	return f.Base.Remove(name)
}

func (f *FaultFS) RemoveAll(path string) error {
	if err := f.check("removeall", path); err != nil {
		return err
	}
	return f.Base.RemoveAll(path)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.check("rename", newpath); err != nil {
		return err
	}
	return f.Base.Rename(oldpath, newpath)
}

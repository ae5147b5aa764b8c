// fileops.go - Output directory reset, asset mirroring and page writes
package sitegen

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// resetOutputDir deletes dir and recreates it empty.
func resetOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fsError("remove output dir", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fsError("create output dir", dir, err)
	}
	return nil
}

// copyFilePreserveDirs copies src out of fsys to dst, creating parent directories as needed.
func copyFilePreserveDirs(fsys fs.FS, src, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fsError("create asset dir", filepath.Dir(dst), err)
	}
	in, err := fsys.Open(src)
	if err != nil {
		return fsError("open asset", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fsError("create asset", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fsError("close asset", dst, cerr)
		}
	}()
	if _, err := io.Copy(out, in); err != nil {
		return fsError("copy asset", src, err)
	}
	return nil
}

// writePage writes data to dst, creating parent directories as needed.
func writePage(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fsError("create page dir", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fsError("write page", dst, err)
	}
	return nil
}

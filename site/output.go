package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	zip "github.com/hidez8891/zip"
)

// writeSiteFile writes one site relative file below root creating directories
// as needed.
func writeSiteFile(root, rel string, data []byte) error {
	dst := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// checkDestination verifies the output target does not clobber previous runs
// unless overwriting was requested. For the tree layout presence of the index
// page marks a previous run, anything else in the directory is left alone.
func checkDestination(dst string, zipped, overwrite bool) error {
	probe := dst
	if !zipped {
		probe = filepath.Join(dst, "index.html")
	}
	if _, err := os.Stat(probe); err == nil {
		if !overwrite {
			return fmt.Errorf("output already exists: %s", probe)
		}
		return os.Remove(probe)
	} else if !os.IsNotExist(err) {
		return err
	}
	return nil
}

// zipTree archives the staged site tree into a single zip file, store only
// for PNG payloads, deflate for everything else.
func zipTree(srcDir, dstFile string) (rerr error) {
	out, err := os.Create(dstFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	zw := zip.NewWriter(out)
	defer func() {
		if err := zw.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	return filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		method := zip.Deflate
		if filepath.Ext(p) == ".png" || filepath.Ext(p) == ".db" {
			// already compressed or page-mapped, recompressing wastes time
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: method,
		})
		if err != nil {
			return err
		}
		in, err := os.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	})
}

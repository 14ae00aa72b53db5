package site

import (
	"os"
	"path/filepath"
	"testing"

	zip "github.com/hidez8891/zip"
)

func TestCheckDestinationTree(t *testing.T) {
	dir := t.TempDir()

	// empty directory is fine
	if err := checkDestination(dir, false, false); err != nil {
		t.Fatalf("empty directory should be accepted: %v", err)
	}

	index := filepath.Join(dir, "index.html")
	if err := os.WriteFile(index, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := checkDestination(dir, false, false); err == nil {
		t.Fatal("previous run should be detected")
	}
	if err := checkDestination(dir, false, true); err != nil {
		t.Fatalf("overwrite should be allowed: %v", err)
	}
	if _, err := os.Stat(index); !os.IsNotExist(err) {
		t.Error("overwrite should remove the old index page")
	}
}

func TestCheckDestinationZip(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "site.zip")

	if err := checkDestination(dst, true, false); err != nil {
		t.Fatalf("missing archive should be accepted: %v", err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := checkDestination(dst, true, false); err == nil {
		t.Fatal("existing archive should be detected")
	}
	if err := checkDestination(dst, true, true); err != nil {
		t.Fatalf("overwrite should be allowed: %v", err)
	}
}

func TestWriteSiteFile(t *testing.T) {
	root := t.TempDir()
	if err := writeSiteFile(root, "css/style.css", []byte("body{}")); err != nil {
		t.Fatalf("writeSiteFile() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "css", "style.css"))
	if err != nil {
		t.Fatalf("file was not written: %v", err)
	}
	if string(data) != "body{}" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestZipTree(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"index.html":        "<html></html>",
		"css/style.css":     "body{}",
		"textures/wand.png": "not really a png",
	}
	for rel, content := range files {
		if err := writeSiteFile(src, rel, []byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	dst := filepath.Join(t.TempDir(), "site.zip")
	if err := zipTree(src, dst); err != nil {
		t.Fatalf("zipTree() error: %v", err)
	}

	zr, err := zip.OpenReader(dst)
	if err != nil {
		t.Fatalf("archive is not readable: %v", err)
	}
	defer zr.Close()

	methods := make(map[string]uint16)
	for _, f := range zr.File {
		methods[f.Name] = f.Method
	}
	if len(methods) != len(files) {
		t.Fatalf("expected %d entries, got %v", len(files), methods)
	}
	if m, ok := methods["textures/wand.png"]; !ok || m != zip.Store {
		t.Error("png payloads should be stored uncompressed")
	}
	if m, ok := methods["index.html"]; !ok || m != zip.Deflate {
		t.Error("pages should be deflated")
	}
}

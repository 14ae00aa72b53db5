package assets

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"pdc/book"
	"pdc/config"
)

var missingSVG = []byte(`<svg viewBox="0 0 16 16" xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="16" height="16" fill="#f800f8"/>
</svg>`)

func pngData(t *testing.T, size int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, size, size))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeTexture(t *testing.T, dir, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func scanFixture(t *testing.T, cfg *config.TexturesConfig) *Index {
	t.Helper()
	dir := t.TempDir()
	writeTexture(t, dir, "assets/testmod/textures/item/wand.png", pngData(t, 16))
	writeTexture(t, dir, "assets/testmod/textures/block/altar.png", pngData(t, 16))
	writeTexture(t, dir, "assets/testmod/textures/page/shrine.png", pngData(t, 128))
	writeTexture(t, dir, "assets/testmod/textures/item/fake.png", []byte("not a png at all"))

	idx, err := Scan([]string{dir}, cfg, missingSVG, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func defaultCfg() *config.TexturesConfig {
	return &config.TexturesConfig{Scale: config.TextureScaleModeNone, IconSize: 64}
}

func TestScanSniffsPNG(t *testing.T) {
	idx := scanFixture(t, defaultCfg())
	if len(idx.textures) != 3 {
		t.Errorf("indexed %d textures, want 3 (non PNG data skipped)", len(idx.textures))
	}
	if _, ok := idx.textures[book.ResourceLocation{Namespace: "testmod", Path: "item/fake"}]; ok {
		t.Error("file with PNG extension but foreign content must be skipped")
	}
}

func TestResolve(t *testing.T) {
	idx := scanFixture(t, defaultCfg())
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare path", "testmod:page/shrine", "textures/testmod/page/shrine.png"},
		{"book style path", "testmod:textures/page/shrine.png", "textures/testmod/page/shrine.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, err := book.ParseResourceLocation(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := idx.Resolve(rl)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveItem(t *testing.T) {
	idx := scanFixture(t, defaultCfg())

	wand, _ := book.ParseResourceLocation("testmod:wand")
	if got, err := idx.ResolveItem(wand); err != nil || got != "textures/testmod/item/wand.png" {
		t.Errorf("ResolveItem(wand) = %q, %v", got, err)
	}
	// no item texture for the altar, block root must be tried second
	altar, _ := book.ParseResourceLocation("testmod:altar")
	if got, err := idx.ResolveItem(altar); err != nil || got != "textures/testmod/block/altar.png" {
		t.Errorf("ResolveItem(altar) = %q, %v", got, err)
	}
}

func TestMissingTexture(t *testing.T) {
	idx := scanFixture(t, defaultCfg())
	rl, _ := book.ParseResourceLocation("testmod:nope")

	if got, err := idx.ResolveItem(rl); err != nil || got != MissingTextureURL {
		t.Errorf("lenient mode: ResolveItem(nope) = %q, %v; want placeholder", got, err)
	}

	strict := defaultCfg()
	strict.Strict = true
	idxStrict := scanFixture(t, strict)
	if _, err := idxStrict.ResolveItem(rl); err == nil {
		t.Error("strict mode must fail on unresolved texture")
	}
}

func TestWriteTo(t *testing.T) {
	idx := scanFixture(t, defaultCfg())
	wand, _ := book.ParseResourceLocation("testmod:wand")
	if _, err := idx.ResolveItem(wand); err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	if err := idx.WriteTo(out); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(out, "textures", "testmod", "item", "wand.png")); err != nil {
		t.Errorf("used texture not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "textures", "testmod", "block", "altar.png")); err == nil {
		t.Error("unused texture must not be copied")
	}

	placeholder := filepath.Join(out, filepath.FromSlash(MissingTextureURL))
	data, err := os.ReadFile(placeholder)
	if err != nil {
		t.Fatalf("placeholder not written: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("placeholder is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("placeholder width = %d, want icon size", img.Bounds().Dx())
	}
}

func TestWriteToUpscalesIcons(t *testing.T) {
	cfg := &config.TexturesConfig{Scale: config.TextureScaleModeNearest, IconSize: 64}
	idx := scanFixture(t, cfg)

	wand, _ := book.ParseResourceLocation("testmod:wand")
	if _, err := idx.ResolveItem(wand); err != nil {
		t.Fatal(err)
	}
	shrine, _ := book.ParseResourceLocation("testmod:page/shrine")
	if _, err := idx.Resolve(shrine); err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	if err := idx.WriteTo(out); err != nil {
		t.Fatal(err)
	}

	checkWidth := func(rel string, want int) {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dx() != want {
			t.Errorf("%s width = %d, want %d", rel, img.Bounds().Dx(), want)
		}
	}
	checkWidth("textures/testmod/item/wand.png", 64)
	// page art is not an icon, it keeps its size
	checkWidth("textures/testmod/page/shrine.png", 128)
}

func TestScanMissingDirs(t *testing.T) {
	idx, err := Scan([]string{filepath.Join(t.TempDir(), "nope")}, defaultCfg(), missingSVG, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.textures) != 0 {
		t.Error("nothing to index")
	}
	if !strings.HasPrefix(MissingTextureURL, "textures/") {
		t.Error("placeholder must live under the textures root")
	}
}

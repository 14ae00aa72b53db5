// Package assets resolves texture resource locations to servable site URLs.
package assets

import (
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"go.uber.org/zap"

	"pdc/book"
	"pdc/config"
)

// MissingTextureURL is the site relative location of the placeholder served
// for textures we could not resolve.
const MissingTextureURL = "textures/missing.png"

// Index maps texture resource locations to files found in the resource
// directories and produces site relative URLs for them.
type Index struct {
	cfg      *config.TexturesConfig
	log      *zap.Logger
	textures map[book.ResourceLocation]string // location -> source file
	used     map[book.ResourceLocation]bool
	missing  []byte // svg placeholder data, rasterized on output
}

// Scan walks the resource directories collecting texture files. Files which
// do not sniff as PNG are skipped - the game would not load them either.
func Scan(dirs []string, cfg *config.TexturesConfig, missingSVG []byte, log *zap.Logger) (*Index, error) {
	if log == nil {
		log = zap.NewNop()
	}
	idx := &Index{
		cfg:      cfg,
		log:      log.Named("textures"),
		textures: make(map[book.ResourceLocation]string),
		used:     make(map[book.ResourceLocation]bool),
		missing:  missingSVG,
	}

	for _, dir := range dirs {
		assetsDir := filepath.Join(dir, "assets")
		namespaces, err := os.ReadDir(assetsDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, ns := range namespaces {
			if !ns.IsDir() {
				continue
			}
			root := filepath.Join(assetsDir, ns.Name(), "textures")
			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					if os.IsNotExist(err) {
						return filepath.SkipAll
					}
					return err
				}
				if d.IsDir() || !strings.HasSuffix(p, ".png") {
					return nil
				}
				data, err := os.ReadFile(p)
				if err != nil {
					return err
				}
				if !filetype.IsType(data, matchers.TypePng) {
					idx.log.Warn("Skipping texture which is not a PNG", zap.String("file", p))
					return nil
				}
				rel, err := filepath.Rel(root, p)
				if err != nil {
					return err
				}
				rl := book.ResourceLocation{
					Namespace: ns.Name(),
					Path:      strings.TrimSuffix(filepath.ToSlash(rel), ".png"),
				}
				if _, exists := idx.textures[rl]; !exists {
					idx.textures[rl] = p
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	idx.log.Debug("Texture scan complete", zap.Int("textures", len(idx.textures)))
	return idx, nil
}

// url builds the site relative URL for an indexed texture and marks it used
// so WriteTo copies it into the output.
func (idx *Index) url(rl book.ResourceLocation) string {
	idx.used[rl] = true
	return path.Join("textures", rl.Namespace, rl.Path+".png")
}

// miss handles an unresolved texture: error in strict mode, placeholder URL
// otherwise.
func (idx *Index) miss(what string) (string, error) {
	if idx.cfg.Strict {
		return "", fmt.Errorf("no texture for %s", what)
	}
	idx.log.Warn("No texture, using placeholder", zap.String("for", what))
	return MissingTextureURL, nil
}

// Resolve maps a texture resource location (optionally carrying the
// "textures/" prefix and ".png" suffix used by image pages) to a site URL.
func (idx *Index) Resolve(rl book.ResourceLocation) (string, error) {
	rl.Path = strings.TrimSuffix(strings.TrimPrefix(rl.Path, "textures/"), ".png")
	if _, ok := idx.textures[rl]; ok {
		return idx.url(rl), nil
	}
	return idx.miss(rl.String())
}

// ResolveItem maps an item id to its icon texture URL, looking under item/
// and block/ texture roots.
func (idx *Index) ResolveItem(id book.ResourceLocation) (string, error) {
	for _, prefix := range []string{"item/", "block/"} {
		rl := book.ResourceLocation{Namespace: id.Namespace, Path: prefix + id.Path}
		if _, ok := idx.textures[rl]; ok {
			return idx.url(rl), nil
		}
	}
	return idx.miss("item " + id.String())
}

// isIcon reports whether the texture is an item or block icon which should be
// upscaled for display.
func isIcon(rl book.ResourceLocation) bool {
	return strings.HasPrefix(rl.Path, "item/") || strings.HasPrefix(rl.Path, "block/")
}

// WriteTo copies every referenced texture into the output directory,
// upscaling icons according to configuration, and writes the placeholder.
func (idx *Index) WriteTo(outDir string) error {
	for rl := range idx.used {
		src, ok := idx.textures[rl]
		if !ok {
			// used entries always come from the index
			panic("unindexed texture marked as used")
		}
		dst := filepath.Join(outDir, "textures", rl.Namespace, filepath.FromSlash(rl.Path)+".png")
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := idx.writeTexture(src, dst, isIcon(rl)); err != nil {
			return fmt.Errorf("unable to write texture %s: %w", rl, err)
		}
	}

	if len(idx.used) == 0 && idx.cfg.Strict {
		return nil
	}
	placeholder, err := idx.placeholderPNG()
	if err != nil {
		return fmt.Errorf("unable to prepare missing texture placeholder: %w", err)
	}
	dst := filepath.Join(outDir, filepath.FromSlash(MissingTextureURL))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, placeholder, 0644)
}

func (idx *Index) writeTexture(src, dst string, icon bool) error {
	if !icon || idx.cfg.Scale == config.TextureScaleModeNone {
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0644)
	}

	img, err := imaging.Open(src)
	if err != nil {
		return err
	}
	if img.Bounds().Dx() < idx.cfg.IconSize {
		filter := imaging.NearestNeighbor // keeps pixel art crisp
		if idx.cfg.Scale == config.TextureScaleModeSmooth {
			filter = imaging.Lanczos
		}
		img = imaging.Resize(img, idx.cfg.IconSize, 0, filter)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	return imaging.Encode(out, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
}

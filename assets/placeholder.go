package assets

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxRasterDim bounds rasterization size, an SVG with an enormous viewBox
// must not be able to allocate gigabytes for the pixel buffer.
const maxRasterDim = 1024

// rasterizeSVG renders SVG data into a square image of the given size.
func rasterizeSVG(svgData []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		w, h = size, size
	}
	scale := float64(size) / float64(max(w, h))
	w = max(min(int(math.Round(float64(w)*scale)), maxRasterDim), 1)
	h = max(min(int(math.Round(float64(h)*scale)), maxRasterDim), 1)

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}

// placeholderPNG rasterizes the embedded missing texture SVG at icon size.
func (idx *Index) placeholderPNG() ([]byte, error) {
	img, err := rasterizeSVG(idx.missing, idx.cfg.IconSize)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package soromap

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// rasterOversample is the fixed supersampling factor for PNG snapshots.
const rasterOversample = 2.0

// renderPNG rasterizes the current layout to a PNG file. The offscreen
// surface is sized to the padded bounding box at rasterOversample and drawn
// with the same scene routine as the live renderer, minus search and hover
// state. An empty model is a no-op.
func (r *renderer) renderPNG(m *Model, path string) error {
	box, ok := boundingBox(m)
	if !ok {
		return nil
	}
	w, h := exportSize(m)

	surface := ebiten.NewImage(int(w*rasterOversample), int(h*rasterOversample))
	defer surface.Deallocate()

	surface.Fill(ColorBackground.toRGBA())
	r.drawScene(surface, m, rasterOversample,
		(-box.X+exportPadding)*rasterOversample,
		(-box.Y+exportPadding)*rasterOversample,
		nil, false, 0)

	return writePNG(path, capturePixels(surface))
}

// capturePixels reads back the surface and converts premultiplied RGBA to
// straight-alpha NRGBA for encoding.
func capturePixels(surface *ebiten.Image) *image.NRGBA {
	bounds := surface.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	surface.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

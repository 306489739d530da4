// Package raster prepares CPU-side images: the pause icon uploaded as an
// overlay texture and snapshots read back from the video framebuffer.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/image/draw"
)

// Icon rasterizes an IconVG icon (e.g. from shiny/materialdesign/icons)
// into a size x size RGBA image painted with c.
func Icon(src []byte, size int, c color.RGBA) (*image.RGBA, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid icon size %d", size)
	}
	m, err := iconvg.DecodeMetadata(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode icon metadata")
	}
	m.Palette[0] = c

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	var z iconvg.Rasterizer
	z.SetDstImage(img, img.Bounds(), draw.Src)
	if err := iconvg.Decode(&z, src, &iconvg.DecodeOptions{Palette: &m.Palette}); err != nil {
		return nil, errors.Wrap(err, "failed to rasterize icon")
	}
	return img, nil
}

// FlipVertical mirrors img top to bottom in place. GL reads pixels
// bottom row first.
func FlipVertical(img *image.RGBA) {
	b := img.Bounds()
	row := make([]byte, b.Dx()*4)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[img.PixOffset(b.Min.X, top):][:len(row)]
		u := img.Pix[img.PixOffset(b.Min.X, bottom):][:len(row)]
		copy(row, t)
		copy(t, u)
		copy(u, row)
	}
}

// Fit scales img down to maxWidth, keeping the aspect ratio. Images
// already narrow enough are returned unchanged.
func Fit(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return nil
}

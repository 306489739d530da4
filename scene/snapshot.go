package scene

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/dejadejade/glmpv/internal/raster"
)

// Snapshot reads the target's current frame back and writes it to path
// as PNG, scaled down to maxWidth.
func Snapshot(t *Target, maxWidth int, path string) error {
	w, h := t.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.FBO())
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	raster.FlipVertical(img)
	// libmpv leaves alpha undefined in the FBO
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return raster.WritePNG(path, raster.Fit(img, maxWidth))
}

package scene

import (
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/dejadejade/glmpv/geom"
	"github.com/dejadejade/glmpv/internal/raster"
)

const (
	overlaySize   = 64
	overlayMargin = 16
)

// Overlay shows a pause icon in the top-left corner.
type Overlay struct {
	quad *Quad
	tex  uint32
}

// NewOverlay uploads the icon texture; quad is shared with the caller.
func NewOverlay(quad *Quad) (*Overlay, error) {
	img, err := raster.Icon(icons.AVPause, overlaySize, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if err != nil {
		return nil, err
	}
	// texture rows run bottom to top
	raster.FlipVertical(img)

	o := &Overlay{quad: quad}
	gl.GenTextures(1, &o.tex)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, overlaySize, overlaySize, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return o, nil
}

// Draw blends the icon over a viewW x viewH viewport.
func (o *Overlay) Draw(viewW, viewH int) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	defer gl.Disable(gl.BLEND)

	r := geom.Rect(viewW, viewH, overlayMargin, overlayMargin, overlaySize)
	o.quad.draw(o.tex, [4]float32{r[0], r[1], r[2], r[3]}, 0.8)
}

func (o *Overlay) Delete() {
	gl.DeleteTextures(1, &o.tex)
}

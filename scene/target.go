package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// Target is a framebuffer object whose colour attachment is an RGBA
// texture. libmpv renders into the FBO; the scene samples the texture.
type Target struct {
	fbo  uint32
	tex  uint32
	w, h int
}

func NewTarget(w, h int) (*Target, error) {
	t := &Target{}
	gl.GenFramebuffers(1, &t.fbo)
	gl.GenTextures(1, &t.tex)

	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	if err := t.Resize(w, h); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

// Resize reallocates the texture storage. The contents are undefined
// until libmpv renders again.
func (t *Target) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return errors.Errorf("invalid target size %dx%d", w, h)
	}
	if w == t.w && h == t.h {
		return nil
	}

	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return errors.Errorf("framebuffer incomplete: 0x%x", status)
	}

	t.w, t.h = w, h
	return nil
}

func (t *Target) FBO() uint32      { return t.fbo }
func (t *Target) Texture() uint32  { return t.tex }
func (t *Target) Size() (int, int) { return t.w, t.h }

func (t *Target) Delete() {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.tex)
	t.fbo, t.tex, t.w, t.h = 0, 0, 0, 0
}

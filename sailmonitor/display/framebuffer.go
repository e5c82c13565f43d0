package display

import (
	"bytes"
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var black = color.RGBA{0, 0, 0, 255}

// Framebuffer is the in-memory 1-bit frame the renderer draws into. A set
// bit is black ink; the cleared state is white paper. It implements
// drivers.Displayer so tinyfont can draw into it directly.
type Framebuffer struct {
	img *image1bit.VerticalLSB
	w   int16
	h   int16
}

// NewFramebuffer allocates a white w x h frame.
func NewFramebuffer(w, h int16) *Framebuffer {
	return &Framebuffer{
		img: image1bit.NewVerticalLSB(image.Rect(0, 0, int(w), int(h))),
		w:   w,
		h:   h,
	}
}

// Size implements drivers.Displayer.
func (f *Framebuffer) Size() (x, y int16) { return f.w, f.h }

// SetPixel implements drivers.Displayer. Dark colors become ink, anything
// else clears the pixel. Out-of-range coordinates are ignored.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	lum := (uint32(c.R)*299 + uint32(c.G)*587 + uint32(c.B)*114) / 1000
	f.img.SetBit(int(x), int(y), image1bit.Bit(c.A != 0 && lum < 128))
}

// Display implements drivers.Displayer. The frame only reaches the panel
// through Panel.Commit, so there is nothing to flush here.
func (f *Framebuffer) Display() error { return nil }

// Clear resets every pixel to white.
func (f *Framebuffer) Clear() {
	clear(f.img.Pix)
}

// Ink reports whether the pixel at x, y is black.
func (f *Framebuffer) Ink(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	return bool(f.img.BitAt(int(x), int(y)))
}

// Equal reports whether both frames hold the same pixels.
func (f *Framebuffer) Equal(other *Framebuffer) bool {
	return f.w == other.w && f.h == other.h && bytes.Equal(f.img.Pix, other.img.Pix)
}

// Image exposes the frame as an image.Image for panel adapters.
func (f *Framebuffer) Image() image.Image { return f.img }

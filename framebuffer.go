package pcd8544

import (
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"

	"github.com/BeatGlow/pcd8544/pixel"
)

// Interface checks.
var (
	_ Display           = (*Dev)(nil)
	_ draw.Image        = (*Dev)(nil)
	_ display.Drawer    = (*Dev)(nil)
	_ drivers.Displayer = (*Dev)(nil)
)

// Width returns the display width, taking the rotation into account.
func (d *Dev) Width() int {
	if d.rotation&1 == 1 {
		return Height
	}
	return Width
}

// Height returns the display height, taking the rotation into account.
func (d *Dev) Height() int {
	if d.rotation&1 == 1 {
		return Width
	}
	return Height
}

// Bounds is the display bounding box, taking the rotation into account.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width(), d.Height())
}

// Size returns the display size, taking the rotation into account.
func (d *Dev) Size() (x, y int16) {
	return int16(d.Width()), int16(d.Height())
}

func (d *Dev) ColorModel() color.Model {
	return pixel.MonoModel
}

// Rotation returns the current pixel rotation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// SetRotation adjusts the pixel rotation. The framebuffer is not touched, only pixels
// drawn afterwards are affected.
func (d *Dev) SetRotation(rotation Rotation) error {
	d.rotation = rotation & 3
	return nil
}

// transform maps display coordinates to controller coordinates. It reports false for
// coordinates outside the display.
func (d *Dev) transform(x, y int) (int, int, bool) {
	if x < 0 || y < 0 || x >= d.Width() || y >= d.Height() {
		return 0, 0, false
	}
	switch d.rotation {
	case Rotate90:
		return y, Height - 1 - x, true
	case Rotate180:
		return Width - 1 - x, Height - 1 - y, true
	case Rotate270:
		return Width - 1 - y, x, true
	default:
		return x, y, true
	}
}

func (d *Dev) setPixel(buf *pixel.MonoVerticalLSBImage, x, y int, on bool) {
	x, y, ok := d.transform(x, y)
	if !ok {
		return
	}
	d.UpdateBoundingBox(x, y, x, y)
	buf.SetBit(x, y, on)
}

func (d *Dev) getPixel(buf *pixel.MonoVerticalLSBImage, x, y int) bool {
	x, y, ok := d.transform(x, y)
	if !ok {
		return false
	}
	return buf.Bit(x, y)
}

// DrawPixel sets (on) or clears the pixel at (x, y). Pixels outside the display are
// ignored.
func (d *Dev) DrawPixel(x, y int, on bool) {
	d.setPixel(d.buf, x, y, on)
}

// Pixel reports whether the pixel at (x, y) is set. Pixels outside the display are never
// set.
func (d *Dev) Pixel(x, y int) bool {
	return d.getPixel(d.buf, x, y)
}

// At returns the color of the pixel at (x, y).
func (d *Dev) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(d.Bounds()) {
		return color.Transparent
	}
	return pixel.Mono{On: d.Pixel(x, y)}
}

// Set the pixel color at (x, y).
func (d *Dev) Set(x, y int, c color.Color) {
	d.DrawPixel(x, y, pixel.IsOn(c))
}

// SetPixel sets the pixel at (x, y), any color but black turns the pixel on.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	d.DrawPixel(int(x), int(y), c.R != 0 || c.G != 0 || c.B != 0)
}

// Draw renders src onto the display and sends the changes to the controller. Parts of dst
// outside the display are clipped, sp still aligns with dst.Min.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	draw.Draw(d, dst, src, sp, draw.Src)
	return d.Display()
}

// Cursor returns the text cursor position used by text renderers.
func (d *Dev) Cursor() image.Point {
	return d.cursor
}

// SetCursor moves the text cursor.
func (d *Dev) SetCursor(pt image.Point) {
	d.cursor = pt
}

// Clear the display buffer and move the cursor back to the origin.
func (d *Dev) Clear() {
	d.buf.Clear()
	d.markAllDirty()
	d.cursor = image.Point{}
}

// Scroll moves the framebuffer contents by (dx, dy) pixels, in display coordinates.
// Pixels pushed off one edge come back on the opposite edge.
func (d *Dev) Scroll(dx, dy int) {
	w, h := d.Width(), d.Height()
	if dx %= w; dx < 0 {
		dx += w
	}
	if dy %= h; dy < 0 {
		dy += h
	}

	if d.scratch == nil {
		d.scratch = pixel.NewMonoVerticalLSBImage(Width, Height)
	} else {
		d.scratch.Clear()
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if d.getPixel(d.buf, x, y) {
				d.setPixel(d.scratch, (x+dx)%w, (y+dy)%h, true)
			}
		}
	}
	copy(d.buf.Pix, d.scratch.Pix)
	d.markAllDirty()
}

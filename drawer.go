package lcdpanel

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"

	"github.com/flavioheleno/lcdpanel/rgb565"
)

// Drawer exposes a 16 bits per pixel Panel as a periph display.Drawer.
//
// Draw renders into a frame kept in memory and only sends the bounding box
// of the pixels that changed since the previous call.
type Drawer struct {
	p    Panel
	rect image.Rectangle

	next *rgb565.Image // Frame being composed
	last *rgb565.Image // Frame last sent to the panel

	halted bool
}

// NewDrawer wraps p. The panel must already be initialized.
func NewDrawer(p Panel) (*Drawer, error) {
	if bpp := p.BytesPerPixel(); bpp != 2 {
		return nil, fmt.Errorf("lcdpanel: drawer needs 2 bytes per pixel, panel has %d: %w", bpp, ErrUnsupported)
	}
	rect := p.Bounds()
	return &Drawer{
		p:    p,
		rect: rect,
		next: rgb565.New(rect),
		last: rgb565.New(rect),
	}, nil
}

// ColorModel returns rgb565.Model.
func (d *Drawer) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the panel bounds.
func (d *Drawer) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
func (d *Drawer) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("lcdpanel: drawer halted")
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: a full frame already in the wire format.
	if img, ok := src.(*rgb565.Image); ok && dst == d.rect && sp == (image.Point{}) && img.Rect == d.rect {
		if err := d.p.DrawBitmap(0, 0, d.rect.Dx(), d.rect.Dy(), img.Packed()); err != nil {
			return err
		}
		copy(d.next.Pix, img.Pix)
		copy(d.last.Pix, img.Pix)
		return nil
	}

	draw.Draw(d.next, dst, src, sp, draw.Src)

	changed, ok := d.diff()
	if !ok {
		return nil
	}
	region := d.next.SubImage(changed)
	if err := d.p.DrawBitmap(changed.Min.X-d.rect.Min.X, changed.Min.Y-d.rect.Min.Y, changed.Max.X-d.rect.Min.X, changed.Max.Y-d.rect.Min.Y, region.Packed()); err != nil {
		return err
	}
	copy(d.last.Pix, d.next.Pix)
	return nil
}

// diff returns the smallest rectangle holding every pixel that differs
// between the composed and the last sent frame.
func (d *Drawer) diff() (image.Rectangle, bool) {
	w, h := d.rect.Dx(), d.rect.Dy()
	stride := d.next.Stride
	minX, maxX, minY, maxY := w, -1, h, -1

	for y := 0; y < h; y++ {
		row := y * stride
		a, b := d.last.Pix[row:row+stride], d.next.Pix[row:row+stride]
		if bytes.Equal(a, b) {
			continue
		}
		minY = min(minY, y)
		maxY = max(maxY, y)
		for x := 0; x < w; x++ {
			if a[2*x] != b[2*x] || a[2*x+1] != b[2*x+1] {
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	if maxY < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1).Add(d.rect.Min), true
}

// Halt turns the display off. Draw fails afterwards.
func (d *Drawer) Halt() error {
	d.halted = true
	return d.p.DispOnOff(false)
}

func (d *Drawer) String() string {
	return fmt.Sprintf("lcdpanel.Drawer{%v}", d.p)
}

var _ display.Drawer = (*Drawer)(nil)

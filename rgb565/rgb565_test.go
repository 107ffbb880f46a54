package rgb565

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestRGB565RGBA(t *testing.T) {
	tests := []struct {
		name       string
		c          RGB565
		wr, wg, wb uint32
	}{
		{"black", 0x0000, 0, 0, 0},
		{"white", 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{"red", 0xF800, 0xFFFF, 0, 0},
		{"green", 0x07E0, 0, 0xFFFF, 0},
		{"blue", 0x001F, 0, 0, 0xFFFF},
		{"low red", 0x0800, 0x0808, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.wr || g != tt.wg || b != tt.wb || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)", r, g, b, a, tt.wr, tt.wg, tt.wb)
			}
		})
	}
}

func TestModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  RGB565
	}{
		{"passthrough", RGB565(0x1234), 0x1234},
		{"black", color.Black, 0x0000},
		{"white", color.White, 0xFFFF},
		{"red", color.RGBA{0xFF, 0, 0, 0xFF}, 0xF800},
		{"gray", color.RGBA{0x88, 0x88, 0x88, 0xFF}, 0x8C51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Model.Convert(tt.input).(RGB565); got != tt.want {
				t.Errorf("Model.Convert(%v) = %04x, want %04x", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"320x480", image.Rect(0, 0, 320, 480), 640, 307200},
		{"odd width", image.Rect(0, 0, 3, 2), 6, 12},
		{"offset rect", image.Rect(10, 20, 14, 22), 8, 16},
		{"empty", image.Rect(0, 0, 0, 4), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := New(tt.rect)
			if img.Stride != tt.wantStride || len(img.Pix) != tt.wantPixLen {
				t.Errorf("New(%v) stride=%d len=%d, want stride=%d len=%d", tt.rect, img.Stride, len(img.Pix), tt.wantStride, tt.wantPixLen)
			}
			if img.Bounds() != tt.rect {
				t.Errorf("Bounds() = %v, want %v", img.Bounds(), tt.rect)
			}
		})
	}
}

func TestSetAt(t *testing.T) {
	img := New(image.Rect(10, 20, 14, 22))
	img.SetRGB565(11, 20, 0xABCD)
	img.Set(13, 21, color.RGBA{0, 0, 0xFF, 0xFF})
	img.SetRGB565(100, 100, 0xFFFF) // out of bounds, ignored

	if got := img.RGB565At(11, 20); got != 0xABCD {
		t.Errorf("RGB565At(11, 20) = %04x, want abcd", got)
	}
	if got := img.Pix[2:4]; got[0] != 0xAB || got[1] != 0xCD {
		t.Errorf("Pix[2:4] = % x, want ab cd", got)
	}
	if got := img.At(13, 21).(RGB565); got != 0x001F {
		t.Errorf("At(13, 21) = %04x, want 001f", got)
	}
	if got := img.RGB565At(0, 0); got != 0 {
		t.Errorf("RGB565At outside bounds = %04x, want 0", got)
	}
}

func TestDrawUniform(t *testing.T) {
	img := New(image.Rect(0, 0, 4, 4))
	draw.Draw(img, img.Bounds(), image.NewUniform(RGB565(0xF800)), image.Point{}, draw.Src)
	for i := 0; i < len(img.Pix); i += 2 {
		if img.Pix[i] != 0xF8 || img.Pix[i+1] != 0x00 {
			t.Fatalf("Pix[%d:%d] = % x, want f8 00", i, i+2, img.Pix[i:i+2])
		}
	}
}

func TestPacked(t *testing.T) {
	img := New(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGB565(x, y, RGB565(y<<8|x))
		}
	}

	if got := img.Packed(); &got[0] != &img.Pix[0] {
		t.Error("Packed() copied contiguous pixels")
	}

	sub := img.SubImage(image.Rect(1, 1, 3, 3))
	want := []byte{0x01, 0x01, 0x01, 0x02, 0x02, 0x01, 0x02, 0x02}
	got := sub.Packed()
	if string(got) != string(want) {
		t.Errorf("SubImage(1,1,3,3).Packed() = % x, want % x", got, want)
	}
	if sub.RGB565At(2, 2) != 0x0202 {
		t.Errorf("SubImage RGB565At(2, 2) = %04x, want 0202", sub.RGB565At(2, 2))
	}
}

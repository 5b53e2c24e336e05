package memview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/jmchacon/6502core/memory"
)

func TestRender(t *testing.T) {
	r := memory.NewFlat()
	r.Write(0x0000, 0x10)
	r.Write(0x06FF, 0xEA)
	r.Write(0xFFFF, 0xFF)

	tests := []struct {
		name  string
		scale int
	}{
		{"unscaled", 1},
		{"zero scale", 0},
		{"scaled", 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := test.scale
			if s < 1 {
				s = 1
			}
			i := Render(r, test.scale)
			if got, want := i.Bounds().Dx(), Width*s; got != want {
				t.Fatalf("Wrong width. Got %d want %d", got, want)
			}
			if got, want := i.Bounds().Dy(), Height*s; got != want {
				t.Fatalf("Wrong height. Got %d want %d", got, want)
			}
			for _, test := range []struct {
				x, y int
				want uint8
			}{
				{0x00, 0x00, 0x10},
				{0xFF, 0x06, 0xEA},
				{0xFF, 0xFF, 0xFF},
				{0x01, 0x00, 0x00},
			} {
				// Check the last pixel of each scaled block.
				x, y := test.x*s+s-1, test.y*s+s-1
				if got, want := i.GrayAt(x, y).Y, test.want; got != want {
					t.Errorf("Pixel %d,%d wrong. Got 0x%.2X want 0x%.2X", x, y, got, want)
				}
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	r := memory.NewFlat()
	r.Write(0x1234, 0x80)
	var b bytes.Buffer
	if err := WritePNG(&b, r, 2); err != nil {
		t.Fatalf("WritePNG failed - %v", err)
	}
	i, err := png.Decode(&b)
	if err != nil {
		t.Fatalf("Can't decode PNG - %v", err)
	}
	if got, want := i.Bounds().Dx(), Width*2; got != want {
		t.Errorf("Wrong width. Got %d want %d", got, want)
	}
	gray, _, _, _ := i.At(0x34*2, 0x12*2).RGBA()
	if got, want := gray>>8, uint32(0x80); got != want {
		t.Errorf("Wrong pixel. Got 0x%.2X want 0x%.2X", got, want)
	}
}

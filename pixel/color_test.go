package pixel

import (
	"image/color"
	"testing"
)

func TestMono(t *testing.T) {
	for y := 0; y < 2; y++ {
		t.Run("", func(it *testing.T) {
			c := Off
			if y > 0 {
				c = On
			}
			r, g, b, _ := c.RGBA()
			y *= 0xF
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestMonoModel(t *testing.T) {
	tests := []struct {
		c    color.Color
		want Mono
	}{
		{color.Black, Off},
		{color.White, On},
		{color.Transparent, Off},
		{color.Gray{Y: 0x7f}, Off},
		{color.Gray{Y: 0x80}, On},
		{color.RGBA{R: 0xff, A: 0xff}, Off},
		{color.RGBA{G: 0xff, A: 0xff}, On},
		{On, On},
		{Off, Off},
	}
	for _, test := range tests {
		if v := MonoModel.Convert(test.c); v != test.want {
			t.Errorf("expected %#+v to convert to %v, got %v", test.c, test.want, v)
		}
	}
}

package draw_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/BeatGlow/sh1106/draw"
	"github.com/BeatGlow/sh1106/pixel"
)

func countOn(img *pixel.MonoVerticalLSBImage) (n int) {
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.BitAt(x, y) {
				n++
			}
		}
	}
	return
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Point
		want int
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3), 1},
		{"horizontal", image.Pt(0, 5), image.Pt(9, 5), 10},
		{"vertical", image.Pt(5, 9), image.Pt(5, 0), 10},
		{"diagonal", image.Pt(0, 0), image.Pt(7, 7), 8},
		{"wide", image.Pt(0, 0), image.Pt(15, 3), 16},
		{"high", image.Pt(0, 15), image.Pt(3, 0), 16},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			img := pixel.NewMonoVerticalLSBImage(32, 32)
			draw.Line(img, test.a, test.b, pixel.On)
			if !img.BitAt(test.a.X, test.a.Y) || !img.BitAt(test.b.X, test.b.Y) {
				it.Errorf("expected end points %s and %s to be on", test.a, test.b)
			}
			if n := countOn(img); n != test.want {
				it.Errorf("expected %d pixels on, got %d", test.want, n)
			}
		})
	}
}

func TestZeroLengthLines(t *testing.T) {
	img := pixel.NewMonoVerticalLSBImage(16, 16)
	draw.HorizontalLine(img, 4, 4, 0, pixel.On)
	draw.VerticalLine(img, 4, 4, 0, pixel.On)
	draw.HorizontalLine(img, 4, 4, -3, pixel.On)
	if n := countOn(img); n != 0 {
		t.Errorf("expected no pixels on, got %d", n)
	}
}

func TestRectangle(t *testing.T) {
	img := pixel.NewMonoVerticalLSBImage(128, 64)
	draw.Rectangle(img, img.Bounds(), pixel.On)

	for x := 0; x < 128; x++ {
		if !img.BitAt(x, 0) || !img.BitAt(x, 63) {
			t.Fatalf("expected top and bottom edge at x=%d", x)
		}
	}
	for y := 0; y < 64; y++ {
		if !img.BitAt(0, y) || !img.BitAt(127, y) {
			t.Fatalf("expected left and right edge at y=%d", y)
		}
	}
	if n := countOn(img); n != 2*128+2*62 {
		t.Errorf("expected %d pixels on, got %d", 2*128+2*62, n)
	}
}

func TestBox(t *testing.T) {
	img := pixel.NewMonoVerticalLSBImage(128, 64)
	img.Fill(pixel.On)
	draw.Box(img, image.Rect(0, 18, 128, 64), pixel.Off)

	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x++ {
			if want := y < 18; img.BitAt(x, y) != want {
				t.Fatalf("pixel (%d,%d) is %t, expected %t", x, y, img.BitAt(x, y), want)
			}
		}
	}
}

func TestText(t *testing.T) {
	img := pixel.NewMonoVerticalLSBImage(128, 64)
	w := draw.Text(img, image.Pt(1, 10), nil, pixel.On, "Hello World")
	if w != 11*7 {
		t.Errorf("expected an advance of %d pixels with the default face, got %d", 11*7, w)
	}
	if countOn(img) == 0 {
		t.Fatal("expected text to be drawn")
	}

	// Nothing is drawn above the top of the text box.
	for y := 0; y < 10; y++ {
		for x := 0; x < 128; x++ {
			if img.BitAt(x, y) {
				t.Fatalf("pixel (%d,%d) above the text is on", x, y)
			}
		}
	}
}

func TestParseFont(t *testing.T) {
	face, err := draw.ParseFont(goregular.TTF, 15)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	img := pixel.NewMonoVerticalLSBImage(128, 64)
	if w := draw.Text(img, image.Pt(0, 0), face, pixel.On, "Hello"); w <= 0 {
		t.Errorf("expected a positive advance, got %d", w)
	}
	if countOn(img) == 0 {
		t.Error("expected text to be drawn")
	}

	if _, err = draw.ParseFont([]byte("not a font"), 15); err == nil {
		t.Error("expected error parsing invalid font data")
	}
	if _, err = draw.LoadFont("testdata/does-not-exist.ttf", 15); err == nil {
		t.Error("expected error loading missing font file")
	}
}

func TestRoundedShapes(t *testing.T) {
	var (
		rect    = image.Rect(0, 0, 20, 10)
		corners = []image.Point{image.Pt(0, 0), image.Pt(19, 0), image.Pt(0, 9), image.Pt(19, 9)}
		edges   = []image.Point{image.Pt(10, 0), image.Pt(10, 9), image.Pt(0, 5), image.Pt(19, 5)}
	)

	t.Run("rectangle", func(it *testing.T) {
		img := pixel.NewMonoVerticalLSBImage(32, 32)
		draw.RoundedRectangle(img, rect, 3, pixel.On)
		for _, p := range corners {
			if img.BitAt(p.X, p.Y) {
				it.Errorf("expected corner %s to be off", p)
			}
		}
		for _, p := range edges {
			if !img.BitAt(p.X, p.Y) {
				it.Errorf("expected edge %s to be on", p)
			}
		}
		if img.BitAt(10, 5) {
			it.Error("expected the inside to be empty")
		}
	})

	t.Run("box", func(it *testing.T) {
		img := pixel.NewMonoVerticalLSBImage(32, 32)
		draw.RoundedBox(img, rect, 3, pixel.On)
		for _, p := range corners {
			if img.BitAt(p.X, p.Y) {
				it.Errorf("expected corner %s to be off", p)
			}
		}
		for _, p := range append(edges, image.Pt(10, 5)) {
			if !img.BitAt(p.X, p.Y) {
				it.Errorf("expected %s to be on", p)
			}
		}
		for y := 10; y < 32; y++ {
			for x := 0; x < 32; x++ {
				if img.BitAt(x, y) {
					it.Fatalf("pixel (%d,%d) outside of the box is on", x, y)
				}
			}
		}
	})
}

// setOnly hides the page access of the image it wraps, so shapes are drawn pixel by pixel.
type setOnly struct {
	draw.Image
}

func TestPagedImage(t *testing.T) {
	tests := []struct {
		name string
		draw func(dst draw.Image, c color.Color)
	}{
		{"horizontal", func(dst draw.Image, c color.Color) { draw.HorizontalLine(dst, -5, 13, 200, c) }},
		{"vertical", func(dst draw.Image, c color.Color) { draw.VerticalLine(dst, 7, 3, 50, c) }},
		{"vertical-clipped", func(dst draw.Image, c color.Color) { draw.VerticalLine(dst, 127, -4, 80, c) }},
		{"line", func(dst draw.Image, c color.Color) { draw.Line(dst, image.Pt(-10, 70), image.Pt(140, -3), c) }},
		{"rectangle", func(dst draw.Image, c color.Color) { draw.Rectangle(dst, image.Rect(5, 6, 70, 33), c) }},
		{"box-in-page", func(dst draw.Image, c color.Color) { draw.Box(dst, image.Rect(10, 10, 20, 14), c) }},
		{"box-across-pages", func(dst draw.Image, c color.Color) { draw.Box(dst, image.Rect(3, 5, 99, 42), c) }},
		{"box-clipped", func(dst draw.Image, c color.Color) { draw.Box(dst, image.Rect(-8, 60, 300, 90), c) }},
		{"box-outside", func(dst draw.Image, c color.Color) { draw.Box(dst, image.Rect(130, 0, 140, 10), c) }},
		{"rounded-rectangle", func(dst draw.Image, c color.Color) {
			draw.RoundedRectangle(dst, image.Rect(2, 20, 126, 30), 4, c)
		}},
		{"rounded-box", func(dst draw.Image, c color.Color) { draw.RoundedBox(dst, image.Rect(1, 1, 60, 63), 9, c) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			for _, c := range []color.Color{pixel.On, pixel.Off} {
				var (
					paged   = pixel.NewMonoVerticalLSBImage(128, 64)
					generic = pixel.NewMonoVerticalLSBImage(128, 64)
				)
				if c == pixel.Off {
					paged.Fill(pixel.On)
					generic.Fill(pixel.On)
				}
				test.draw(paged, c)
				test.draw(setOnly{generic}, c)
				if diff := cmp.Diff(generic.Pix, paged.Pix); diff != "" {
					it.Errorf("%v: page writes differ from pixel writes (-want +got):\n%s", c, diff)
				}
			}
		})
	}
}

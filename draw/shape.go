package draw

import (
	"image"
	"image/color"
)

// PagedImage is a 1-bit image stored in pages of 8 rows, one byte per column per page with the
// least significant bit on top, like the display RAM of SH1106 and SSD1306 controllers.
//
// Pages and columns count from Bounds().Min. Shapes drawn onto a PagedImage write whole page bytes
// where they can instead of going through Set for every pixel.
type PagedImage interface {
	Image

	// Page returns the bytes of page n, nil if n is out of range.
	Page(n int) []byte

	// SetBit turns the pixel at (x, y) on or off.
	SetBit(x, y int, on bool)
}

// Line draws a line between a and b, both end points included.
func Line(dst Image, a, b image.Point, c color.Color) {
	switch {
	case a.Y == b.Y:
		if a.X > b.X {
			a, b = b, a
		}
		HorizontalLine(dst, a.X, a.Y, b.X-a.X+1, c)
	case a.X == b.X:
		if a.Y > b.Y {
			a, b = b, a
		}
		VerticalLine(dst, a.X, a.Y, b.Y-a.Y+1, c)
	default:
		bresenham(dst, a, b, c)
	}
}

// HorizontalLine draws w pixels to the right, starting at (x,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w <= 0 {
		return
	}
	if p, ok := dst.(PagedImage); ok {
		on := isOn(p, c)
		for i := x; i < x+w; i++ {
			p.SetBit(i, y, on)
		}
		return
	}
	for i := x; i < x+w; i++ {
		dst.Set(i, y, c)
	}
}

// VerticalLine draws h pixels down, starting at (x,y).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h <= 0 {
		return
	}
	Box(dst, image.Rect(x, y, x+1, y+h), c)
}

// Rectangle draws the outline of rect. The Max point is exclusive, like for [image.Rectangle].
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	w, h := rect.Dx(), rect.Dy()
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon().Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	if p, ok := dst.(PagedImage); ok {
		fillPages(p, rect, isOn(p, c))
		return
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, y, c)
		}
	}
}

// RoundedRectangle draws the outline of rect with corners rounded by radius pixels.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	r := cornerRadius(rect, radius)
	if r == 0 {
		Rectangle(dst, rect, c)
		return
	}

	// Corner centers.
	var (
		x0, y0 = rect.Min.X + r, rect.Min.Y + r
		x1, y1 = rect.Max.X - 1 - r, rect.Max.Y - 1 - r
	)
	HorizontalLine(dst, x0, rect.Min.Y, x1-x0+1, c)
	HorizontalLine(dst, x0, rect.Max.Y-1, x1-x0+1, c)
	VerticalLine(dst, rect.Min.X, y0, y1-y0+1, c)
	VerticalLine(dst, rect.Max.X-1, y0, y1-y0+1, c)
	quarterCircle(r, func(dx, dy int) {
		dst.Set(x0-dx, y0-dy, c)
		dst.Set(x1+dx, y0-dy, c)
		dst.Set(x0-dx, y1+dy, c)
		dst.Set(x1+dx, y1+dy, c)
	})
}

// RoundedBox draws a filled rectangle with corners rounded by radius pixels.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	var (
		r      = cornerRadius(rect, radius)
		x0, y0 = rect.Min.X + r, rect.Min.Y + r
		x1, y1 = rect.Max.X - 1 - r, rect.Max.Y - 1 - r
	)
	Box(dst, image.Rect(rect.Min.X, y0, rect.Max.X, y1+1), c)
	quarterCircle(r, func(dx, dy int) {
		HorizontalLine(dst, x0-dx, y0-dy, x1-x0+1+2*dx, c)
		HorizontalLine(dst, x0-dx, y1+dy, x1-x0+1+2*dx, c)
	})
}

// cornerRadius limits radius so that opposite corners do not overlap.
func cornerRadius(rect image.Rectangle, radius int) int {
	r := radius
	if m := (rect.Dx() - 1) / 2; r > m {
		r = m
	}
	if m := (rect.Dy() - 1) / 2; r > m {
		r = m
	}
	if r < 0 {
		return 0
	}
	return r
}

// quarterCircle calls plot for every point (dx, dy) of a quarter circle of radius r, with dx and
// dy >= 0, using the midpoint circle algorithm. Some points are plotted twice.
func quarterCircle(r int, plot func(dx, dy int)) {
	x, y, f := 0, r, 1-r
	for x <= y {
		plot(x, y)
		plot(y, x)
		x++
		if f < 0 {
			f += 2*x + 1
		} else {
			y--
			f += 2*(x-y) + 1
		}
	}
}

// bresenham draws the line between a and b in any direction.
func bresenham(dst Image, a, b image.Point, c color.Color) {
	var (
		dx, sx = abs(b.X-a.X), step(a.X, b.X)
		dy, sy = -abs(b.Y-a.Y), step(a.Y, b.Y)
		e      = dx + dy
	)
	for {
		dst.Set(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

// fillPages sets or clears the pixels of rect, which must be within the bounds of p, one page
// byte at a time.
func fillPages(p PagedImage, rect image.Rectangle, on bool) {
	var (
		origin = p.Bounds().Min
		top    = rect.Min.Y - origin.Y
		bottom = rect.Max.Y - origin.Y
		left   = rect.Min.X - origin.X
		right  = rect.Max.X - origin.X
	)
	for page := top / 8; page*8 < bottom; page++ {
		var (
			lo = max(top-page*8, 0)
			hi = min(bottom-page*8, 8)
			// Rows lo up to hi (exclusive) of this page.
			mask = byte(0xff<<uint(lo)) & byte(0xff>>uint(8-hi))
			data = p.Page(page)
		)
		if data == nil {
			return
		}
		for x := left; x < right; x++ {
			if on {
				data[x] |= mask
			} else {
				data[x] &^= mask
			}
		}
	}
}

// isOn reports if c is a lit pixel in the color model of p.
func isOn(p PagedImage, c color.Color) bool {
	r, g, b, _ := p.ColorModel().Convert(c).RGBA()
	return r|g|b != 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}

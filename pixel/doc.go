// Package pixel implements the 1-bit color model and page-organised framebuffer used by
// SH1106 style OLED controllers.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so anything that draws into an image can draw into the framebuffer.
package pixel

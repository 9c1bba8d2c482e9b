// Package draw provides shape and text drawing on top of [image/draw].
package draw

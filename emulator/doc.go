// Package emulator implements a software SH1106 controller with a 128x64 panel.
//
// A Panel decodes the command and data stream a driver sends and keeps its own display RAM, so a
// driver can be exercised without hardware. The visible part of the display RAM can be rendered to
// a terminal using ANSI 256 colors.
//
// Useful while you are waiting for your OLED module to come by mail.
package emulator

// Package pixel implements the 1-bit color and image types used by the PCD8544 driver.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so any graphics code speaking those interfaces can render into them.
package pixel

// Package pcd8544 is a driver for the Philips PCD8544 dot-matrix LCD controller.
//
// The PCD8544 drives the 84x48 monochrome panels found in Nokia 5110 and 3310 phones. The
// driver keeps a framebuffer in host memory, tracks which part of it changed and only sends
// that part to the controller when [Dev.Display] is called.
//
// A [Dev] can be used as an [image/draw.Image], as a periph.io display.Drawer and as a TinyGo
// drivers.Displayer, so most graphics libraries can render into it.
package pcd8544

import (
	"errors"
	"image"
	"image/color"
	"os"

	"periph.io/x/conn/v3/gpio"
)

var debug bool

func init() {
	debug = os.Getenv("PCD8544_DEBUG") != ""
}

// Errors
var (
	ErrNotReady    = errors.New("pcd8544: display not initialized, call Begin first")
	ErrHalted      = errors.New("pcd8544: display halted")
	ErrSize        = errors.New("pcd8544: unsupported display size")
	ErrNoBacklight = errors.New("pcd8544: no backlight GPIO pin configured")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Display is a monochrome pixel display with a host side framebuffer.
type Display interface {
	// Close the display driver.
	Close() error

	// Clear the display buffer.
	Clear()

	// At returns the color of the pixel at (x, y).
	At(x, y int) color.Color

	// Set the pixel color at (x, y).
	Set(x, y int, c color.Color)

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error

	// SetRotation adjusts the pixel rotation.
	SetRotation(Rotation) error

	// Refresh redraws the display.
	Refresh() error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, 0 selects the panel width.
	Width int

	// Height of the display in pixels, 0 selects the panel height.
	Height int

	// Rotation of the display.
	Rotation Rotation

	// NoSplash starts with an empty framebuffer instead of the splash image.
	NoSplash bool

	// Backlight pin
	Backlight gpio.PinOut
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Width:  Width,
	Height: Height,
}

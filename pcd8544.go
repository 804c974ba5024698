package pcd8544

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/pcd8544/pixel"
)

// Panel dimensions.
const (
	Width      = 84
	Height     = 48
	Pages      = Height / 8
	bufferSize = Width * Pages
)

// Default Begin arguments for a typical Nokia 5110 module.
const (
	DefaultContrast = 40
	DefaultBias     = 0x04
	MaxContrast     = 0x7f
	MaxBias         = 0x07
)

// Instruction set, see the PCD8544 datasheet, table 1.
const (
	pcd8544PowerDown           = 0x04
	pcd8544ExtendedInstruction = 0x01

	pcd8544DisplayNormal   = 0x04
	pcd8544DisplayInverted = 0x05

	// Basic instruction set (H = 0).
	pcd8544FunctionSet    = 0x20
	pcd8544DisplayControl = 0x08
	pcd8544SetYAddr       = 0x40
	pcd8544SetXAddr       = 0x80

	// Extended instruction set (H = 1).
	pcd8544SetBias = 0x10
	pcd8544SetVOP  = 0x80
)

// Dev is a handle to a PCD8544 LCD controller.
//
// Dev is not safe for concurrent use, callers drawing from several goroutines must
// serialize access themselves.
type Dev struct {
	c         Conn
	buf       *pixel.MonoVerticalLSBImage
	scratch   *pixel.MonoVerticalLSBImage
	rotation  Rotation
	dirty     boundingBox
	cursor    image.Point
	backlight gpio.PinOut

	contrast       uint8
	bias           uint8
	reinitInterval uint8
	displayCount   uint8

	ready  bool
	halted bool
}

// New creates a driver for a PCD8544 connected to conn. The bus is not touched until
// Begin is called.
func New(conn Conn, config *Config) (*Dev, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	if config.Width == 0 {
		config.Width = Width
	}
	if config.Height == 0 {
		config.Height = Height
	}
	if config.Width != Width || config.Height != Height {
		return nil, fmt.Errorf("%w %dx%d", ErrSize, config.Width, config.Height)
	}

	d := &Dev{
		c:        conn,
		buf:      pixel.NewMonoVerticalLSBImage(Width, Height),
		rotation: config.Rotation & 3,
		contrast: DefaultContrast,
		bias:     DefaultBias,
	}
	if validPin(config.Backlight) {
		d.backlight = config.Backlight
	}
	if !config.NoSplash {
		copy(d.buf.Pix, splash[:])
	}
	d.dirty.reset()

	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("PCD8544 LCD %dx%d", d.Width(), d.Height())
}

// Begin acquires the bus, initializes the controller with the provided contrast and bias
// and sends the whole framebuffer.
//
// An error means the display can not be used, the bus is released again.
func (d *Dev) Begin(contrast, bias uint8) error {
	if err := d.c.Open(); err != nil {
		return fmt.Errorf("pcd8544: open %s: %w", d.c, err)
	}

	d.contrast = min(contrast, MaxContrast)
	d.bias = min(bias, MaxBias)
	d.reinitInterval = 0
	d.displayCount = 0
	d.ready = true
	d.halted = false

	if err := d.initDisplay(); err != nil {
		d.ready = false
		_ = d.c.Close()
		return err
	}
	if debug {
		log.Printf("pcd8544: initialized on %s with contrast %d and bias %d", d.c, d.contrast, d.bias)
	}

	d.markAllDirty()
	return d.Display()
}

// initDisplay resets the controller and programs bias and contrast. It can be repeated at
// any time.
func (d *Dev) initDisplay() error {
	switch err := d.c.Reset(gpio.Low); {
	case err == nil:
		time.Sleep(time.Millisecond)
		if err = d.c.Reset(gpio.High); err != nil {
			return fmt.Errorf("pcd8544: reset: %w", err)
		}
	case errors.Is(err, ErrNoResetPin):
	default:
		return fmt.Errorf("pcd8544: reset: %w", err)
	}

	if err := d.sendBias(); err != nil {
		return err
	}
	if err := d.sendContrast(); err != nil {
		return err
	}
	return d.command(
		pcd8544FunctionSet,
		pcd8544DisplayControl|pcd8544DisplayNormal,
	)
}

func (d *Dev) command(cmnds ...byte) error {
	if err := d.c.Command(cmnds...); err != nil {
		return fmt.Errorf("pcd8544: command %#02x: %w", cmnds[0], err)
	}
	return nil
}

func (d *Dev) data(data ...byte) error {
	if err := d.c.Data(data...); err != nil {
		return fmt.Errorf("pcd8544: write %d bytes: %w", len(data), err)
	}
	return nil
}

// Display sends the part of the framebuffer that changed since the previous call.
//
// If a reinit interval is set, every so many calls the controller is initialized again
// first, which recovers it from register corruption caused by electrical noise.
func (d *Dev) Display() error {
	if !d.ready {
		return ErrNotReady
	}
	if d.halted {
		return ErrHalted
	}

	if d.reinitInterval > 0 {
		d.displayCount++
		if d.displayCount >= d.reinitInterval {
			d.displayCount = 0
			if debug {
				log.Printf("pcd8544: reinitializing after %d refreshes", d.reinitInterval)
			}
			if err := d.initDisplay(); err != nil {
				return err
			}
		}
	}

	var sent int
	if !d.dirty.empty() {
		xMin, yMin, xMax, yMax := d.dirty.clip()
		for page := yMin / 8; page < yMax/8+1; page++ {
			if err := d.command(
				pcd8544SetYAddr|byte(page),
				pcd8544SetXAddr|byte(xMin),
			); err != nil {
				return err
			}
			if err := d.data(d.buf.Page(page)[xMin : xMax+1]...); err != nil {
				return err
			}
			sent += xMax - xMin + 1
		}
	}

	// Without a trailing Y address the controller does not commit the last data byte.
	if err := d.command(pcd8544SetYAddr); err != nil {
		return err
	}
	if debug {
		log.Printf("pcd8544: refreshed %s, %d bytes", d.dirty.rect(), sent)
	}

	d.dirty.reset()
	return nil
}

// Refresh is an alias for Display.
func (d *Dev) Refresh() error {
	return d.Display()
}

// Contrast returns the operating voltage (Vop) setting.
func (d *Dev) Contrast() uint8 {
	return d.contrast
}

// SetContrast adjusts the operating voltage (Vop), values above 127 are clamped.
func (d *Dev) SetContrast(level uint8) error {
	d.contrast = min(level, MaxContrast)
	if !d.ready {
		return nil
	}
	return d.sendContrast()
}

func (d *Dev) sendContrast() error {
	return d.command(
		pcd8544FunctionSet|pcd8544ExtendedInstruction,
		pcd8544SetVOP|d.contrast,
		pcd8544FunctionSet,
	)
}

// Bias returns the bias system setting.
func (d *Dev) Bias() uint8 {
	return d.bias
}

// SetBias adjusts the bias system, values above 7 are clamped.
func (d *Dev) SetBias(level uint8) error {
	d.bias = min(level, MaxBias)
	if !d.ready {
		return nil
	}
	return d.sendBias()
}

func (d *Dev) sendBias() error {
	return d.command(
		pcd8544FunctionSet|pcd8544ExtendedInstruction,
		pcd8544SetBias|d.bias,
		pcd8544FunctionSet,
	)
}

// ReinitInterval returns the number of Display calls between controller reinitializations.
func (d *Dev) ReinitInterval() uint8 {
	return d.reinitInterval
}

// SetReinitInterval makes Display initialize the controller again every n calls, 0
// disables it.
func (d *Dev) SetReinitInterval(n uint8) {
	d.reinitInterval = n
}

// Invert toggles inverse video on the controller, the framebuffer is left as is.
func (d *Dev) Invert(invert bool) error {
	if !d.ready {
		return ErrNotReady
	}
	mode := byte(pcd8544DisplayNormal)
	if invert {
		mode = pcd8544DisplayInverted
	}
	return d.command(pcd8544FunctionSet, pcd8544DisplayControl|mode)
}

// Show toggles the controller power down mode.
func (d *Dev) Show(show bool) error {
	if !d.ready {
		return ErrNotReady
	}
	if show {
		if err := d.command(pcd8544FunctionSet); err != nil {
			return err
		}
		d.halted = false
		return nil
	}
	return d.command(pcd8544FunctionSet | pcd8544PowerDown)
}

// SetBacklight switches the LED backlight, if a backlight pin is configured.
func (d *Dev) SetBacklight(on bool) error {
	if d.backlight == nil {
		return ErrNoBacklight
	}
	return d.backlight.Out(gpio.Level(on))
}

// Halt powers the controller down. Drawing keeps working on the framebuffer, Show(true)
// resumes refreshing.
func (d *Dev) Halt() error {
	if !d.ready || d.halted {
		return nil
	}
	if err := d.Show(false); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Close powers the controller down and releases the bus.
func (d *Dev) Close() error {
	err := d.Halt()
	d.ready = false
	if cerr := d.c.Close(); err == nil {
		err = cerr
	}
	return err
}

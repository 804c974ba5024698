// Package emulator is an in-memory model of a PCD8544 controller.
//
// A Controller implements pcd8544.Conn: it decodes the command stream like the real
// chip does and keeps the display data RAM, so drivers and applications can run without
// hardware. The pcd8544-sim command renders it in a desktop window.
package emulator

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/pcd8544"
	"github.com/BeatGlow/pcd8544/pixel"
)

// Mode is the display configuration set by the display control instruction.
type Mode uint8

// Display modes.
const (
	Blank Mode = iota
	Normal
	AllOn
	Inverted
)

func (m Mode) String() string {
	switch m {
	case Blank:
		return "blank"
	case Normal:
		return "normal"
	case AllOn:
		return "all segments on"
	case Inverted:
		return "inverse video"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ErrClosed is returned when writing to a controller that was not opened.
var ErrClosed = errors.New("emulator: connection is not open")

// Transfer is one Command or Data call as seen on the bus.
type Transfer struct {
	Command bool
	Bytes   []byte
}

// Controller emulates a PCD8544 behind a serial bus.
//
// The zero value is a controller in its power-on state, with a reset line.
type Controller struct {
	// NoReset simulates a module without a reset line.
	NoReset bool

	// FailOpen is returned by Open when not nil.
	FailOpen error

	// FailWrite is returned by Command and Data when not nil.
	FailWrite error

	mu        sync.Mutex
	ram       *pixel.MonoVerticalLSBImage
	x, y      int
	extended  bool
	vertical  bool
	powerDown bool
	mode      Mode
	vop       uint8
	bias      uint8
	temp      uint8
	isOpen    bool
	inReset   bool
	resets    int
	log       []Transfer
}

// Interface checks.
var _ pcd8544.Conn = (*Controller)(nil)

// New returns a controller in its power-on state.
func New() *Controller {
	c := new(Controller)
	c.init()
	return c
}

func (c *Controller) init() {
	if c.ram == nil {
		c.ram = pixel.NewMonoVerticalLSBImage(pcd8544.Width, pcd8544.Height)
		c.powerOn()
	}
}

// powerOn restores the register state after a reset. Display data RAM is not cleared.
func (c *Controller) powerOn() {
	c.x, c.y = 0, 0
	c.extended = false
	c.vertical = false
	c.powerDown = true
	c.mode = Blank
	c.vop = 0
	c.bias = 0
	c.temp = 0
}

func (c *Controller) String() string {
	return "PCD8544 emulator"
}

func (c *Controller) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailOpen != nil {
		return c.FailOpen
	}
	c.init()
	c.isOpen = true
	return nil
}

func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = false
	return nil
}

// Reset drives the reset line. The registers return to their power-on state on the
// rising edge.
func (c *Controller) Reset(level gpio.Level) error {
	if c.NoReset {
		return pcd8544.ErrNoResetPin
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	if level == gpio.Low {
		c.inReset = true
		return nil
	}
	if c.inReset {
		c.inReset = false
		c.resets++
		c.powerOn()
	}
	return nil
}

func (c *Controller) Command(cmnds ...byte) error {
	return c.write(true, cmnds)
}

func (c *Controller) Data(data ...byte) error {
	return c.write(false, data)
}

func (c *Controller) write(command bool, b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return ErrClosed
	}
	if c.FailWrite != nil {
		return c.FailWrite
	}

	c.log = append(c.log, Transfer{Command: command, Bytes: append([]byte(nil), b...)})
	if c.inReset {
		return nil
	}
	for _, v := range b {
		if command {
			c.execute(v)
		} else {
			c.store(v)
		}
	}
	return nil
}

// execute decodes one instruction, see the PCD8544 datasheet, table 1.
func (c *Controller) execute(cmd byte) {
	switch {
	case cmd&0x80 != 0:
		if c.extended {
			c.vop = cmd & 0x7f
		} else if x := int(cmd & 0x7f); x < pcd8544.Width {
			c.x = x
		}
	case cmd&0x40 != 0:
		if !c.extended {
			if y := int(cmd & 0x07); y < pcd8544.Pages {
				c.y = y
			}
		}
	case cmd&0x20 != 0:
		c.powerDown = cmd&0x04 != 0
		c.vertical = cmd&0x02 != 0
		c.extended = cmd&0x01 != 0
	case cmd&0x10 != 0:
		if c.extended {
			c.bias = cmd & 0x07
		}
	case cmd&0x08 != 0:
		if !c.extended {
			c.mode = Mode(cmd>>2&0x01 | cmd&0x01<<1)
		}
	case cmd&0x04 != 0:
		if c.extended {
			c.temp = cmd & 0x03
		}
	}
}

// store writes one byte of display data and advances the address counters.
func (c *Controller) store(v byte) {
	c.ram.Pix[c.y*pcd8544.Width+c.x] = v
	if c.vertical {
		if c.y++; c.y == pcd8544.Pages {
			c.y = 0
			if c.x++; c.x == pcd8544.Width {
				c.x = 0
			}
		}
		return
	}
	if c.x++; c.x == pcd8544.Width {
		c.x = 0
		if c.y++; c.y == pcd8544.Pages {
			c.y = 0
		}
	}
}

// Image returns a copy of the display data RAM.
func (c *Controller) Image() *pixel.MonoVerticalLSBImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	return c.copyRAM()
}

func (c *Controller) copyRAM() *pixel.MonoVerticalLSBImage {
	i := pixel.NewMonoVerticalLSBImage(pcd8544.Width, pcd8544.Height)
	copy(i.Pix, c.ram.Pix)
	return i
}

// Visible returns what the glass shows, taking power down and the display mode into
// account. Set pixels are dark segments.
func (c *Controller) Visible() *pixel.MonoVerticalLSBImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	i := c.copyRAM()
	switch {
	case c.powerDown || c.mode == Blank:
		i.Clear()
	case c.mode == AllOn:
		i.Fill(pixel.On)
	case c.mode == Inverted:
		i.Invert()
	}
	return i
}

// Address returns the X (column) and Y (page) address counters.
func (c *Controller) Address() (x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x, c.y
}

// Contrast returns the operating voltage (Vop) register.
func (c *Controller) Contrast() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vop
}

// Bias returns the bias system register.
func (c *Controller) Bias() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bias
}

// Temperature returns the temperature coefficient register.
func (c *Controller) Temperature() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.temp
}

// Mode returns the display mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// PowerDown reports if the controller is in power down mode.
func (c *Controller) PowerDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	return c.powerDown
}

// Extended reports if the extended instruction set is selected.
func (c *Controller) Extended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extended
}

// IsOpen reports if Open was called without a matching Close.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Resets returns the number of completed reset pulses.
func (c *Controller) Resets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

// Log returns the transfers received so far.
func (c *Controller) Log() []Transfer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Transfer(nil), c.log...)
}

// ClearLog forgets the recorded transfers.
func (c *Controller) ClearLog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = nil
}

// DataBytes returns the number of display data bytes received so far.
func (c *Controller) DataBytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, t := range c.log {
		if !t.Command {
			n += len(t.Bytes)
		}
	}
	return n
}

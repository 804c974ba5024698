package pcd8544

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// BitBangConfig describes a software SPI connection over plain GPIO pins.
//
// This is useful on boards where the hardware SPI port is taken or not wired to the
// display. The PCD8544 samples DIN on the rising edge of SCLK, most significant bit first.
type BitBangConfig struct {
	// SCLK is the serial clock pin.
	SCLK gpio.PinOut

	// DIN is the serial data pin.
	DIN gpio.PinOut

	// DC is the data/command select pin.
	DC gpio.PinOut

	// CE is the active low chip enable pin, optional if tied to ground.
	CE gpio.PinOut

	// Reset pin, optional.
	Reset gpio.PinOut
}

type bitBangConn struct {
	sclk   gpio.PinOut
	din    gpio.PinOut
	dc     gpio.PinOut
	cs     gpio.PinOut
	reset  gpio.PinOut
	isOpen bool
}

// OpenBitBang prepares a software SPI connection.
func OpenBitBang(config *BitBangConfig) (Conn, error) {
	if config == nil {
		return nil, fmt.Errorf("pcd8544: bit bang configuration is required")
	}
	if !validPin(config.SCLK) {
		return nil, fmt.Errorf("pcd8544: serial clock (SCLK) GPIO pin is invalid")
	}
	if !validPin(config.DIN) {
		return nil, fmt.Errorf("pcd8544: serial data (DIN) GPIO pin is invalid")
	}
	if !validPin(config.DC) {
		return nil, ErrDCPin
	}

	c := &bitBangConn{
		sclk: config.SCLK,
		din:  config.DIN,
		dc:   config.DC,
	}
	if validPin(config.CE) {
		c.cs = config.CE
	}
	if validPin(config.Reset) {
		c.reset = config.Reset
	}
	return c, nil
}

func (c *bitBangConn) String() string {
	return fmt.Sprintf("software SPI (SCLK=%s DIN=%s)", c.sclk, c.din)
}

func (c *bitBangConn) Open() error {
	for _, pin := range []gpio.PinOut{c.sclk, c.din, c.dc} {
		if err := pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("pcd8544: configure %s: %w", pin, err)
		}
	}
	// Idle high: chip deselected and controller out of reset.
	for _, pin := range []gpio.PinOut{c.cs, c.reset} {
		if pin == nil {
			continue
		}
		if err := pin.Out(gpio.High); err != nil {
			return fmt.Errorf("pcd8544: configure %s: %w", pin, err)
		}
	}
	c.isOpen = true
	return nil
}

func (c *bitBangConn) Close() error {
	c.isOpen = false
	return nil
}

func (c *bitBangConn) Reset(level gpio.Level) error {
	if c.reset == nil {
		return ErrNoResetPin
	}
	return c.reset.Out(level)
}

func (c *bitBangConn) Command(cmnds ...byte) error {
	return c.send(gpio.Low, cmnds)
}

func (c *bitBangConn) Data(data ...byte) error {
	return c.send(gpio.High, data)
}

func (c *bitBangConn) send(dc gpio.Level, data []byte) (err error) {
	if !c.isOpen {
		return ErrNotOpen
	}
	if len(data) == 0 {
		return
	}
	if err = c.dc.Out(dc); err != nil {
		return
	}
	if c.cs != nil {
		if err = c.cs.Out(gpio.Low); err != nil {
			return
		}
		defer func() {
			if csErr := c.cs.Out(gpio.High); err == nil {
				err = csErr
			}
		}()
	}
	for _, b := range data {
		if err = c.shift(b); err != nil {
			return
		}
	}
	return
}

// shift clocks out one byte, most significant bit first.
func (c *bitBangConn) shift(b byte) error {
	for bit := 7; bit >= 0; bit-- {
		if err := c.din.Out(b&(1<<uint(bit)) != 0); err != nil {
			return err
		}
		if err := c.sclk.Out(gpio.High); err != nil {
			return err
		}
		if err := c.sclk.Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

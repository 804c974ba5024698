package pcd8544

import (
	"errors"
	"fmt"
	"log"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Conn errors.
var (
	ErrNoResetPin = errors.New("pcd8544: no reset GPIO pin configured")
	ErrDCPin      = errors.New("pcd8544: data/command (DC) GPIO pin is invalid")
	ErrNotOpen    = errors.New("pcd8544: connection is not open")
)

// Conn is the connection interface for communicating with the controller.
type Conn interface {
	String() string

	// Open acquires the bus and configures the data/command and reset lines as outputs.
	Open() error

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level, it returns ErrNoResetPin if the
	// connection has no reset line.
	Reset(gpio.Level) error

	// Command sends command bytes, with the data/command line low.
	Command(...byte) error

	// Data sends display data bytes, with the data/command line high.
	Data(...byte) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Bus is the periph.io SPI port name, empty selects the first available port.
	Bus string

	// Port is an already opened SPI port, it takes precedence over Bus. The caller keeps
	// ownership: Close leaves it open.
	Port spi.PortCloser

	Mode      spi.Mode
	SpeedHz   uint32
	BatchSize uint

	// Reset pin, optional.
	Reset gpio.PinOut

	// DC is the data/command select pin.
	DC gpio.PinOut

	// CE is a chip enable pin driven by the driver, leave nil if the port drives CS.
	CE gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Mode:      spi.Mode0,
	SpeedHz:   4_000_000,
	BatchSize: 4096,
}

// ValidSPISpeeds are the SPI bus speeds the PCD8544 is rated for.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
}

type spiConn struct {
	bus       string
	port      spi.PortCloser
	ownPort   bool
	isOpen    bool
	c         spi.Conn
	mode      spi.Mode
	speedHz   uint32
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	cs        gpio.PinOut
	batchSize uint
}

// OpenSPI prepares a hardware SPI connection. The bus itself is acquired by Conn.Open.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if !validPin(config.DC) {
		return nil, ErrDCPin
	}

	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("pcd8544: invalid SPI speed %dHz", config.SpeedHz)
	}

	c := &spiConn{
		bus:       config.Bus,
		port:      config.Port,
		mode:      config.Mode,
		speedHz:   config.SpeedHz,
		batchSize: config.BatchSize,
		dc:        config.DC,
	}
	if validPin(config.Reset) {
		c.reset = config.Reset
	}
	if validPin(config.CE) {
		c.cs = config.CE
	}
	return c, nil
}

func validPin(p gpio.PinOut) bool {
	return p != nil && p != gpio.INVALID
}

func (c *spiConn) String() string {
	if c.port != nil {
		return fmt.Sprintf("SPI bus %s", c.port)
	}
	if c.bus == "" {
		return "SPI bus (default)"
	}
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Open() (err error) {
	if c.isOpen {
		return nil
	}

	if c.c == nil {
		if c.port == nil {
			if c.port, err = spireg.Open(c.bus); err != nil {
				return err
			}
			c.ownPort = true
		}

		if c.c, err = c.port.Connect(physic.Frequency(c.speedHz)*physic.Hertz, c.mode, 8); err != nil {
			c.release()
			return err
		}

		if l, ok := c.c.(conn.Limits); ok {
			if n := l.MaxTxSize(); n > 0 && uint(n) < c.batchSize {
				c.batchSize = uint(n)
			}
		}
	}

	if err = c.dc.Out(gpio.Low); err != nil {
		c.release()
		return err
	}
	c.dcLevel = gpio.Low

	if err = c.updateCS(gpio.High); err != nil {
		c.release()
		return err
	}
	if c.reset != nil {
		if err = c.reset.Out(gpio.High); err != nil {
			c.release()
			return err
		}
	}
	c.isOpen = true
	return nil
}

// release closes a port opened by Open. Ports passed in SPIConfig belong to the caller and
// keep their connection, so a later Open can reuse it.
func (c *spiConn) release() {
	c.isOpen = false
	if !c.ownPort {
		return
	}
	_ = c.port.Close()
	c.port = nil
	c.ownPort = false
	c.c = nil
}

func (c *spiConn) Close() error {
	c.isOpen = false
	if !c.ownPort {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	c.ownPort = false
	c.c = nil
	return err
}

func (c *spiConn) Reset(level gpio.Level) error {
	if c.reset == nil {
		return ErrNoResetPin
	}
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnds ...byte) error {
	return c.send(gpio.Low, cmnds)
}

func (c *spiConn) Data(data ...byte) error {
	return c.send(gpio.High, data)
}

func (c *spiConn) send(dc gpio.Level, data []byte) (err error) {
	if !c.isOpen {
		return ErrNotOpen
	}
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(dc); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		_ = c.updateCS(gpio.High)
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) <= int(c.batchSize) {
		return c.c.Tx(data, nil)
	}

	if debug {
		log.Printf("pcd8544: write %d bytes of data in %d chunks", len(data), (len(data)+int(c.batchSize)-1)/int(c.batchSize))
	}
	buffer := data
	for len(buffer) > 0 {
		n := len(buffer)
		if n > int(c.batchSize) {
			n = int(c.batchSize)
		}
		if err = c.c.Tx(buffer[:n], nil); err != nil {
			return
		}
		buffer = buffer[n:]
	}
	return
}

package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/pcd8544"
	"github.com/BeatGlow/pcd8544/pixel"
)

func main() {
	spiBusFlag := flag.String("spi-bus", "", "SPI port name (default: use first available)")
	spiSpeedFlag := flag.Uint("spi-speed", uint(pcd8544.DefaultSPIConfig.SpeedHz), "SPI bus speed in Hz")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	cePinFlag := flag.String("ce", "", "Chip enable GPIO pin, if not driven by the SPI port")
	sclkPinFlag := flag.String("sclk", "GPIO11", "Serial clock GPIO pin (bitbang)")
	dinPinFlag := flag.String("din", "GPIO10", "Serial data GPIO pin (bitbang)")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	contrastFlag := flag.Uint("contrast", pcd8544.DefaultContrast, "Contrast (Vop), 0-127")
	biasFlag := flag.Uint("bias", pcd8544.DefaultBias, "Bias system, 0-7")
	reinitFlag := flag.Uint("reinit", 0, "Reinitialize the controller every n refreshes (0: never)")
	fontFlag := flag.String("font", "", "TrueType font file (default: built-in 7x13 font)")
	fontSizeFlag := flag.Float64("font-size", 10, "TrueType font size in points")
	textFlag := flag.String("text", "PCD8544", "Text to show")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <spi|bitbang>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	var rotation pcd8544.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = pcd8544.NoRotation
	case "90", "right", "cw":
		rotation = pcd8544.Rotate90
	case "180", "flip":
		rotation = pcd8544.Rotate180
	case "270", "left", "ccw":
		rotation = pcd8544.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}
	fmt.Printf("using rotation: %s\n", rotation)

	var face font.Face = basicfont.Face7x13
	if *fontFlag != "" {
		f, err := loadFont(*fontFlag, *fontSizeFlag)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		face = f
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	var (
		conn pcd8544.Conn
		err  error
	)
	switch busType := flag.Arg(0); busType {
	case "spi":
		conn, err = pcd8544.OpenSPI(&pcd8544.SPIConfig{
			Bus:     *spiBusFlag,
			Mode:    pcd8544.DefaultSPIConfig.Mode,
			SpeedHz: uint32(*spiSpeedFlag),
			Reset:   pinByName(*resetPinFlag),
			DC:      pinByName(*dcPinFlag),
			CE:      pinByName(*cePinFlag),
		})
	case "bitbang":
		conn, err = pcd8544.OpenBitBang(&pcd8544.BitBangConfig{
			SCLK:  pinByName(*sclkPinFlag),
			DIN:   pinByName(*dinPinFlag),
			DC:    pinByName(*dcPinFlag),
			CE:    pinByName(*cePinFlag),
			Reset: pinByName(*resetPinFlag),
		})
	default:
		err = fmt.Errorf("unsupported bus type %q", busType)
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", conn)

	output, err := pcd8544.New(conn, &pcd8544.Config{
		Rotation:  rotation,
		Backlight: pinByName(*blPinFlag),
	})
	if err != nil {
		fatal(err)
	}
	if err = output.Begin(uint8(*contrastFlag), uint8(*biasFlag)); err != nil {
		fatal(err)
	}
	defer output.Close()
	output.SetReinitInterval(uint8(*reinitFlag))
	if err = output.SetBacklight(true); err != nil {
		fmt.Printf("no backlight: %v\n", err)
	}
	fmt.Printf("using driver: %s, contrast %d, bias %d\n", output, output.Contrast(), output.Bias())

	// Splash
	time.Sleep(2 * time.Second)

	var (
		r      = output.Bounds()
		ticker = time.NewTicker(50 * time.Millisecond)
	)
	defer ticker.Stop()

	output.Clear()
	drawBorder(output, r)
	drawText(output, face, r, *textFlag)
	if err = output.Display(); err != nil {
		fatal(err)
	}
	time.Sleep(time.Second)

	fmt.Println("hit control-c to stop...")
	for offset := 0; ; offset++ {
		switch step := offset % 400; {
		case step < 100:
			output.Scroll(1, 0)
		case step < 200:
			output.Scroll(0, 1)
		case step < 250:
			drawPattern(output, r, offset)
		case step == 250:
			fatalIf(output.Invert(true))
		case step < 300:
			// Contrast sweep around the configured value.
			level := int(*contrastFlag) + (step-275)/5
			fatalIf(output.SetContrast(uint8(max(level, 0))))
		case step == 300:
			fatalIf(output.Invert(false))
			fatalIf(output.SetContrast(uint8(*contrastFlag)))
			output.Clear()
			drawBorder(output, r)
			drawText(output, face, r, *textFlag)
		}
		fatalIf(output.Display())
		<-ticker.C
	}
}

// pinByName looks up a GPIO pin, an empty name yields no pin.
func pinByName(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		fatal(fmt.Errorf("unknown GPIO pin %q", name))
	}
	return p
}

func loadFont(name string, size float64) (font.Face, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawBorder(dst draw.Image, r image.Rectangle) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, pixel.On)
		dst.Set(x, r.Max.Y-1, pixel.On)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, pixel.On)
		dst.Set(r.Max.X-1, y, pixel.On)
	}
}

// drawText centers s in r.
func drawText(dst draw.Image, face font.Face, r image.Rectangle, s string) {
	var (
		metrics = face.Metrics()
		drawer  = font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(pixel.On),
			Face: face,
		}
		width  = drawer.MeasureString(s)
		height = metrics.Ascent + metrics.Descent
	)
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(r.Dx()) - width) / 2,
		Y: (fixed.I(r.Dy())-height)/2 + metrics.Ascent,
	}
	drawer.DrawString(s)
}

func drawPattern(dst draw.Image, r image.Rectangle, offset int) {
	for y := r.Min.Y + 1; y < r.Max.Y-1; y++ {
		for x := r.Min.X + 1; x < r.Max.X-1; x++ {
			if (x+y+offset)%4 == 0 {
				dst.Set(x, y, pixel.On)
			} else {
				dst.Set(x, y, pixel.Off)
			}
		}
	}
}

func fatalIf(err error) {
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

// Command pcd8544-sim runs the driver against an emulated controller and shows the LCD in a
// desktop window.
//
// Keys: I toggles inverse video, R rotates, up and down adjust the contrast, space pauses
// and P toggles power down.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/BeatGlow/pcd8544"
	"github.com/BeatGlow/pcd8544/emulator"
)

var (
	colorGlass   = color.RGBA{R: 0x9b, G: 0xbc, B: 0x0f, A: 0xff}
	colorSegment = color.RGBA{R: 0x0f, G: 0x38, B: 0x0f, A: 0xff}
	colorText    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type sim struct {
	lcd      *emulator.Controller
	dev      *pcd8544.Dev
	text     string
	frame    int
	paused   bool
	inverted bool
	powered  bool
	ball     image.Point
	speed    image.Point
	img      *image.RGBA
	fbImg    *ebiten.Image
}

func newSim(contrast, bias uint8, reinit uint8, text string) (*sim, error) {
	lcd := emulator.New()
	dev, err := pcd8544.New(lcd, nil)
	if err != nil {
		return nil, err
	}
	if err = dev.Begin(contrast, bias); err != nil {
		return nil, err
	}
	dev.SetReinitInterval(reinit)

	return &sim{
		lcd:     lcd,
		dev:     dev,
		text:    text,
		powered: true,
		ball:    image.Pt(10, 20),
		speed:   image.Pt(1, 1),
		img:     image.NewRGBA(image.Rect(0, 0, pcd8544.Width, pcd8544.Height)),
	}, nil
}

func (s *sim) Update() error {
	if err := s.handleKeys(); err != nil {
		return err
	}
	if s.paused || !s.powered {
		return nil
	}

	// Show the splash for two seconds.
	if s.frame++; s.frame < 120 {
		return nil
	}

	s.dev.Clear()
	w, h := s.dev.Size()
	tinyfont.WriteLine(s.dev, &proggy.TinySZ8pt7b, 2, 10, s.text, colorText)
	tinyfont.WriteLine(s.dev, &proggy.TinySZ8pt7b, 2, int16(h)-2, fmt.Sprintf("Vop %d", s.dev.Contrast()), colorText)

	s.ball = s.ball.Add(s.speed)
	if s.ball.X <= 0 || s.ball.X >= int(w)-3 {
		s.speed.X = -s.speed.X
	}
	if s.ball.Y <= 12 || s.ball.Y >= int(h)-12 {
		s.speed.Y = -s.speed.Y
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			s.dev.DrawPixel(s.ball.X+x, s.ball.Y+y, true)
		}
	}

	// A sine wave scrolling underneath.
	for x := 0; x < int(w); x++ {
		y := int(h)/2 + int(4*math.Sin(float64(x+s.frame)/6))
		s.dev.DrawPixel(x, y, true)
	}

	return s.dev.Display()
}

func (s *sim) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.paused = !s.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		s.inverted = !s.inverted
		return s.dev.Invert(s.inverted)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.powered = !s.powered
		return s.dev.Show(s.powered)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.ball = image.Pt(10, 20)
		return s.dev.SetRotation(s.dev.Rotation() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		return s.dev.SetContrast(s.dev.Contrast() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		if c := s.dev.Contrast(); c > 0 {
			return s.dev.SetContrast(c - 1)
		}
	}
	return nil
}

// segmentColor fades the segments with the operating voltage, like the glass does.
func segmentColor(vop uint8) color.RGBA {
	f := min(float64(vop)/64, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*f)
	}
	return color.RGBA{
		R: mix(colorGlass.R, colorSegment.R),
		G: mix(colorGlass.G, colorSegment.G),
		B: mix(colorGlass.B, colorSegment.B),
		A: 0xff,
	}
}

func (s *sim) Draw(screen *ebiten.Image) {
	var (
		visible = s.lcd.Visible()
		on      = segmentColor(s.lcd.Contrast())
	)
	for y := 0; y < pcd8544.Height; y++ {
		for x := 0; x < pcd8544.Width; x++ {
			if visible.Bit(x, y) {
				s.img.SetRGBA(x, y, on)
			} else {
				s.img.SetRGBA(x, y, colorGlass)
			}
		}
	}
	if s.fbImg == nil {
		s.fbImg = ebiten.NewImage(pcd8544.Width, pcd8544.Height)
	}
	s.fbImg.WritePixels(s.img.Pix)
	screen.DrawImage(s.fbImg, nil)
}

func (s *sim) Layout(outsideWidth, outsideHeight int) (int, int) {
	return pcd8544.Width, pcd8544.Height
}

func main() {
	scaleFlag := flag.Int("scale", 8, "Window scale factor")
	contrastFlag := flag.Uint("contrast", pcd8544.DefaultContrast, "Contrast (Vop), 0-127")
	biasFlag := flag.Uint("bias", pcd8544.DefaultBias, "Bias system, 0-7")
	reinitFlag := flag.Uint("reinit", 0, "Reinitialize the controller every n refreshes (0: never)")
	textFlag := flag.String("text", "Nokia 5110", "Text to show")
	flag.Parse()

	s, err := newSim(uint8(*contrastFlag), uint8(*biasFlag), uint8(*reinitFlag), *textFlag)
	if err != nil {
		log.Fatalln("start failed:", err)
	}
	defer s.dev.Close()

	ebiten.SetWindowTitle(s.dev.String())
	ebiten.SetWindowSize(pcd8544.Width**scaleFlag, pcd8544.Height**scaleFlag)
	ebiten.SetTPS(60)
	if err = ebiten.RunGame(s); err != nil {
		log.Fatalln("simulator failed:", err)
	}
}

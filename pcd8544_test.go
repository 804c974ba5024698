package pcd8544_test

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/pcd8544"
	"github.com/BeatGlow/pcd8544/emulator"
)

func testDev(t *testing.T, config *pcd8544.Config) (*pcd8544.Dev, *emulator.Controller) {
	t.Helper()
	c := emulator.New()
	d, err := pcd8544.New(c, config)
	if err != nil {
		t.Fatal(err)
	}
	return d, c
}

func testBegin(t *testing.T, config *pcd8544.Config) (*pcd8544.Dev, *emulator.Controller) {
	t.Helper()
	d, c := testDev(t, config)
	if err := d.Begin(pcd8544.DefaultContrast, pcd8544.DefaultBias); err != nil {
		t.Fatal(err)
	}
	c.ClearLog()
	return d, c
}

// sameRAM compares the framebuffer with the controller display data RAM.
func sameRAM(t *testing.T, d *pcd8544.Dev, c *emulator.Controller) {
	t.Helper()
	ram := c.Image()
	for y := 0; y < pcd8544.Height; y++ {
		for x := 0; x < pcd8544.Width; x++ {
			if want, got := d.Pixel(x, y), ram.Bit(x, y); want != got {
				t.Fatalf("pixel (%d,%d): expected %t in controller RAM, got %t", x, y, want, got)
			}
		}
	}
}

func TestNew(t *testing.T) {
	for _, config := range []*pcd8544.Config{
		{Width: 128, Height: 64},
		{Width: 48, Height: 84},
		{Width: 84, Height: 32},
	} {
		if _, err := pcd8544.New(emulator.New(), config); !errors.Is(err, pcd8544.ErrSize) {
			t.Errorf("%dx%d: expected %v, got %v", config.Width, config.Height, pcd8544.ErrSize, err)
		}
	}

	// Zero dimensions select the panel size.
	if _, err := pcd8544.New(emulator.New(), &pcd8544.Config{}); err != nil {
		t.Error(err)
	}

	d, _ := testDev(t, nil)
	if s := d.String(); s != "PCD8544 LCD 84x48" {
		t.Errorf("unexpected name %q", s)
	}
	if r := d.Dirty(); !r.Empty() {
		t.Errorf("expected nothing dirty before Begin, got %s", r)
	}
}

func TestBegin(t *testing.T) {
	d, c := testDev(t, nil)
	if err := d.Begin(40, 4); err != nil {
		t.Fatal(err)
	}

	if !c.IsOpen() {
		t.Error("expected Begin to open the connection")
	}
	if n := c.Resets(); n != 1 {
		t.Errorf("expected 1 reset pulse, got %d", n)
	}
	if c.Contrast() != 40 || c.Bias() != 4 {
		t.Errorf("expected contrast 40 and bias 4, got %d and %d", c.Contrast(), c.Bias())
	}
	if c.Mode() != emulator.Normal || c.PowerDown() || c.Extended() {
		t.Errorf("expected normal mode with the basic instruction set, got %s", c.Mode())
	}

	log := c.Log()
	if n := len(log); n != 3+2*pcd8544.Pages+1 {
		t.Fatalf("expected %d transfers, got %d", 3+2*pcd8544.Pages+1, n)
	}
	for page := 0; page < pcd8544.Pages; page++ {
		address, data := log[3+2*page], log[4+2*page]
		if want := []byte{0x40 | byte(page), 0x80}; !address.Command || !bytes.Equal(address.Bytes, want) {
			t.Errorf("page %d: expected address %#v, got %#v", page, want, address.Bytes)
		}
		if data.Command || len(data.Bytes) != pcd8544.Width {
			t.Errorf("page %d: expected %d data bytes, got %d", page, pcd8544.Width, len(data.Bytes))
		}
	}
	if last := log[len(log)-1]; !last.Command || !bytes.Equal(last.Bytes, []byte{0x40}) {
		t.Errorf("expected trailing Y address, got %#v", last.Bytes)
	}

	if r := d.Dirty(); !r.Empty() {
		t.Errorf("expected nothing dirty after Begin, got %s", r)
	}
	sameRAM(t, d, c)

	var set int
	for _, b := range c.Image().Pix {
		for ; b != 0; b &= b - 1 {
			set++
		}
	}
	if set == 0 {
		t.Error("expected the splash image to be sent")
	}
}

func TestBeginNoSplash(t *testing.T) {
	d, c := testBegin(t, &pcd8544.Config{NoSplash: true})
	for i, b := range c.Image().Pix {
		if b != 0 {
			t.Fatalf("expected empty display data RAM, got %#02x at %d", b, i)
		}
	}
	sameRAM(t, d, c)
}

func TestBeginNoReset(t *testing.T) {
	d, c := testDev(t, nil)
	c.NoReset = true
	if err := d.Begin(pcd8544.DefaultContrast, pcd8544.DefaultBias); err != nil {
		t.Fatal(err)
	}
	if n := c.Resets(); n != 0 {
		t.Errorf("expected no reset pulse, got %d", n)
	}
	sameRAM(t, d, c)
}

func TestBeginClamp(t *testing.T) {
	d, c := testDev(t, nil)
	if err := d.Begin(0xff, 0xff); err != nil {
		t.Fatal(err)
	}
	if d.Contrast() != pcd8544.MaxContrast || d.Bias() != pcd8544.MaxBias {
		t.Errorf("expected contrast and bias clamped, got %d and %d", d.Contrast(), d.Bias())
	}
	if c.Contrast() != pcd8544.MaxContrast || c.Bias() != pcd8544.MaxBias {
		t.Errorf("expected controller contrast and bias clamped, got %d and %d", c.Contrast(), c.Bias())
	}
}

func TestBeginOpenFailure(t *testing.T) {
	errTest := errors.New("test")
	d, c := testDev(t, nil)
	c.FailOpen = errTest
	if err := d.Begin(pcd8544.DefaultContrast, pcd8544.DefaultBias); !errors.Is(err, errTest) {
		t.Errorf("expected %v, got %v", errTest, err)
	}
	if err := d.Display(); !errors.Is(err, pcd8544.ErrNotReady) {
		t.Errorf("expected %v, got %v", pcd8544.ErrNotReady, err)
	}
}

func TestBeginInitFailure(t *testing.T) {
	errTest := errors.New("test")
	d, c := testDev(t, nil)
	c.FailWrite = errTest
	if err := d.Begin(pcd8544.DefaultContrast, pcd8544.DefaultBias); !errors.Is(err, errTest) {
		t.Errorf("expected %v, got %v", errTest, err)
	}
	if c.IsOpen() {
		t.Error("expected the bus to be released after a failed initialization")
	}
	if err := d.Display(); !errors.Is(err, pcd8544.ErrNotReady) {
		t.Errorf("expected %v, got %v", pcd8544.ErrNotReady, err)
	}

	c.FailWrite = nil
	if err := d.Begin(pcd8544.DefaultContrast, pcd8544.DefaultBias); err != nil {
		t.Fatal(err)
	}
	sameRAM(t, d, c)
}

func TestNotReady(t *testing.T) {
	d, c := testDev(t, nil)
	tests := []struct {
		Name string
		Call func() error
	}{
		{"Display", d.Display},
		{"Refresh", d.Refresh},
		{"Invert", func() error { return d.Invert(true) }},
		{"Show", func() error { return d.Show(true) }},
		{"Draw", func() error { return d.Draw(d.Bounds(), image.White, image.Point{}) }},
	}
	for _, test := range tests {
		if err := test.Call(); !errors.Is(err, pcd8544.ErrNotReady) {
			t.Errorf("%s: expected %v, got %v", test.Name, pcd8544.ErrNotReady, err)
		}
	}

	// Setters only store the value.
	if err := d.SetContrast(60); err != nil {
		t.Error(err)
	}
	if err := d.SetBias(3); err != nil {
		t.Error(err)
	}
	if d.Contrast() != 60 || d.Bias() != 3 {
		t.Errorf("expected contrast 60 and bias 3, got %d and %d", d.Contrast(), d.Bias())
	}
	if n := len(c.Log()); n != 0 {
		t.Errorf("expected no transfers, got %d", n)
	}
}

func TestDisplayPartial(t *testing.T) {
	d, c := testBegin(t, &pcd8544.Config{NoSplash: true})

	d.DrawPixel(10, 13, true)
	if r, want := d.Dirty(), image.Rect(10, 13, 11, 14); !r.Eq(want) {
		t.Errorf("expected dirty %s, got %s", want, r)
	}
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}

	want := []emulator.Transfer{
		{Command: true, Bytes: []byte{0x41, 0x80 | 10}},
		{Command: false, Bytes: []byte{0x20}},
		{Command: true, Bytes: []byte{0x40}},
	}
	log := c.Log()
	if len(log) != len(want) {
		t.Fatalf("expected %d transfers, got %d", len(want), len(log))
	}
	for i := range want {
		if log[i].Command != want[i].Command || !bytes.Equal(log[i].Bytes, want[i].Bytes) {
			t.Errorf("transfer %d: expected %+v, got %+v", i, want[i], log[i])
		}
	}
	if !c.Image().Bit(10, 13) {
		t.Error("expected pixel (10,13) set in controller RAM")
	}
	if r := d.Dirty(); !r.Empty() {
		t.Errorf("expected nothing dirty after Display, got %s", r)
	}

	// Spanning pages: columns 2 to 5 of pages 0 to 2.
	c.ClearLog()
	d.DrawPixel(2, 7, true)
	d.DrawPixel(5, 16, true)
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	if n := c.DataBytes(); n != 3*4 {
		t.Errorf("expected %d data bytes, got %d", 3*4, n)
	}
	sameRAM(t, d, c)
}

func TestDisplayTwice(t *testing.T) {
	d, c := testBegin(t, nil)
	d.DrawPixel(0, 0, true)
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	c.ClearLog()
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	log := c.Log()
	if len(log) != 1 || !bytes.Equal(log[0].Bytes, []byte{0x40}) {
		t.Errorf("expected only the trailing Y address, got %+v", log)
	}
}

func TestDisplayWriteFailure(t *testing.T) {
	errTest := errors.New("test")
	d, c := testBegin(t, &pcd8544.Config{NoSplash: true})

	d.DrawPixel(30, 30, true)
	c.FailWrite = errTest
	if err := d.Display(); !errors.Is(err, errTest) {
		t.Fatalf("expected %v, got %v", errTest, err)
	}
	if r, want := d.Dirty(), image.Rect(30, 30, 31, 31); !r.Eq(want) {
		t.Errorf("expected dirty %s to survive a failed write, got %s", want, r)
	}

	c.FailWrite = nil
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	if !c.Image().Bit(30, 30) {
		t.Error("expected pixel (30,30) set in controller RAM")
	}
}

func TestReinitInterval(t *testing.T) {
	d, c := testBegin(t, nil)
	if n := d.ReinitInterval(); n != 0 {
		t.Errorf("expected reinit disabled after Begin, got %d", n)
	}

	d.SetReinitInterval(3)
	for i, want := range []int{1, 1, 2, 2, 2, 3} {
		if err := d.Display(); err != nil {
			t.Fatal(err)
		}
		if n := c.Resets(); n != want {
			t.Errorf("call %d: expected %d reset pulses, got %d", i+1, want, n)
		}
	}
	if c.Mode() != emulator.Normal || c.Contrast() != pcd8544.DefaultContrast {
		t.Error("expected controller configured after reinitialization")
	}

	// Begin disables it again.
	if err := d.Begin(pcd8544.DefaultContrast, pcd8544.DefaultBias); err != nil {
		t.Fatal(err)
	}
	if n := d.ReinitInterval(); n != 0 {
		t.Errorf("expected reinit disabled after Begin, got %d", n)
	}
}

func TestSetContrast(t *testing.T) {
	d, c := testBegin(t, nil)
	for _, test := range []struct {
		Level, Want uint8
	}{
		{0, 0},
		{60, 60},
		{0x7f, 0x7f},
		{0x80, 0x7f},
		{200, 0x7f},
		{0xff, 0x7f},
	} {
		if err := d.SetContrast(test.Level); err != nil {
			t.Fatal(err)
		}
		if v := c.Contrast(); v != test.Want {
			t.Errorf("contrast %d: expected %d, got %d", test.Level, test.Want, v)
		}
		if c.Extended() {
			t.Error("expected the basic instruction set to be restored")
		}
	}
}

func TestSetBias(t *testing.T) {
	d, c := testBegin(t, nil)
	for _, test := range []struct {
		Level, Want uint8
	}{
		{0, 0},
		{3, 3},
		{7, 7},
		{8, 7},
		{10, 7},
		{0xff, 7},
	} {
		if err := d.SetBias(test.Level); err != nil {
			t.Fatal(err)
		}
		if v := c.Bias(); v != test.Want {
			t.Errorf("bias %d: expected %d, got %d", test.Level, test.Want, v)
		}
	}
}

func TestInvert(t *testing.T) {
	d, c := testBegin(t, nil)
	if err := d.Invert(true); err != nil {
		t.Fatal(err)
	}
	if m := c.Mode(); m != emulator.Inverted {
		t.Errorf("expected %s, got %s", emulator.Inverted, m)
	}
	if err := d.Invert(false); err != nil {
		t.Fatal(err)
	}
	if m := c.Mode(); m != emulator.Normal {
		t.Errorf("expected %s, got %s", emulator.Normal, m)
	}
}

func TestHalt(t *testing.T) {
	d, c := testBegin(t, nil)
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !c.PowerDown() {
		t.Error("expected power down after Halt")
	}
	d.DrawPixel(1, 1, true)
	if err := d.Display(); !errors.Is(err, pcd8544.ErrHalted) {
		t.Errorf("expected %v, got %v", pcd8544.ErrHalted, err)
	}
	if !d.Pixel(1, 1) {
		t.Error("expected drawing to keep working while halted")
	}

	if err := d.Show(true); err != nil {
		t.Fatal(err)
	}
	if c.PowerDown() {
		t.Error("expected power up after Show")
	}
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	if !c.Image().Bit(1, 1) {
		t.Error("expected pixel (1,1) sent after Show")
	}
}

func TestClose(t *testing.T) {
	d, c := testBegin(t, nil)
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if c.IsOpen() {
		t.Error("expected Close to close the connection")
	}
	if !c.PowerDown() {
		t.Error("expected power down after Close")
	}
	if err := d.Display(); !errors.Is(err, pcd8544.ErrNotReady) {
		t.Errorf("expected %v, got %v", pcd8544.ErrNotReady, err)
	}
}

func TestBacklight(t *testing.T) {
	d, _ := testDev(t, nil)
	if err := d.SetBacklight(true); !errors.Is(err, pcd8544.ErrNoBacklight) {
		t.Errorf("expected %v, got %v", pcd8544.ErrNoBacklight, err)
	}

	pin := &gpiotest.Pin{N: "LED"}
	d, _ = testDev(t, &pcd8544.Config{Backlight: pin})
	if err := d.SetBacklight(true); err != nil {
		t.Fatal(err)
	}
	if pin.L != gpio.High {
		t.Error("expected backlight pin high")
	}
	if err := d.SetBacklight(false); err != nil {
		t.Fatal(err)
	}
	if pin.L != gpio.Low {
		t.Error("expected backlight pin low")
	}
}

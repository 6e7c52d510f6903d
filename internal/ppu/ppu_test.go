package ppu

import (
	"os"
	"path/filepath"
	"testing"

	"nesgo/internal/memory"
)

// fakeCart is a minimal CartridgeInterface backed by flat CHR RAM, enough
// to exercise the PPU's memory map without needing a real iNES image.
type fakeCart struct {
	chr [0x2000]uint8
}

func (c *fakeCart) ReadPRG(address uint16) uint8          { return 0 }
func (c *fakeCart) WritePRG(address uint16, value uint8)  {}
func (c *fakeCart) ReadCHR(address uint16) uint8          { return c.chr[address&0x1FFF] }
func (c *fakeCart) WriteCHR(address uint16, value uint8)  { c.chr[address&0x1FFF] = value }
func (c *fakeCart) CartVRAMRead(address uint16) uint8     { return 0 }
func (c *fakeCart) CartVRAMWrite(address uint16, _ uint8) {}

func newTestPPU() *PPU {
	p := New()
	p.SetMemory(memory.NewPPUMemory(&fakeCart{}, memory.MirrorHorizontal))
	p.Reset()
	return p
}

func TestPPUSTATUSReadClearsVBlankAndLatch(t *testing.T) {
	p := newTestPPU()
	p.ppuStatus |= 0x80
	p.w = true

	status := p.ReadRegister(0x2002)
	if status&0x80 == 0 {
		t.Fatal("expected read to report VBlank set")
	}
	if p.ppuStatus&0x80 != 0 {
		t.Fatal("VBlank flag should be cleared after reading $2002")
	}
	if p.w {
		t.Fatal("address latch should be reset after reading $2002")
	}
}

func TestPPUADDRTwoWriteLatch(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2006, 0x12)
	p.WriteRegister(0x2006, 0x34)

	if p.v != 0x1234 {
		t.Fatalf("v = %#04x, want 0x1234 after two-byte $2006 write", p.v)
	}
	if p.w {
		t.Fatal("address latch should toggle back to false after second write")
	}
}

func TestPPUSCROLLSetsCoarseAndFineScroll(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2005, 0x10) // x: coarseX=2, fineX=0
	if p.x != 0 {
		t.Fatalf("fineX = %d, want 0", p.x)
	}
	p.WriteRegister(0x2005, 0x08) // y: coarseY=1, fineY=0

	coarseX := p.t & 0x1F
	coarseY := (p.t >> 5) & 0x1F
	if coarseX != 2 {
		t.Fatalf("coarseX = %d, want 2", coarseX)
	}
	if coarseY != 1 {
		t.Fatalf("coarseY = %d, want 1", coarseY)
	}
}

func TestPPUDATAIncrementsByOneOrThirtyTwo(t *testing.T) {
	p := newTestPPU()
	p.ppuCtrl = 0 // increment by 1
	p.v = 0x2000
	p.WriteRegister(0x2007, 0x42)
	if p.v != 0x2001 {
		t.Fatalf("v = %#04x, want 0x2001", p.v)
	}

	p.ppuCtrl = 0x04 // increment by 32
	p.WriteRegister(0x2007, 0x43)
	if p.v != 0x2021 {
		t.Fatalf("v = %#04x, want 0x2021", p.v)
	}
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p := newTestPPU()
	p.memory.Write(0x2000, 0x55)
	p.v = 0x2000
	first := p.ReadRegister(0x2007) // primes the buffer, returns stale value
	if first != 0 {
		t.Fatalf("first buffered read = %#02x, want 0 (buffer was empty)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0x55 {
		t.Fatalf("second read = %#02x, want 0x55 (buffered byte)", second)
	}

	p.memory.Write(0x3F01, 0x2A)
	p.v = 0x3F01
	if got := p.ReadRegister(0x2007); got != 0x2A {
		t.Fatalf("palette read = %#02x, want 0x2A (palette reads are not buffered)", got)
	}
}

func TestNMIFiresOnVBlankSetWhenEnabled(t *testing.T) {
	p := newTestPPU()
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // enable NMI on VBlank

	p.scanline = 241
	p.cycle = 0
	p.Step() // advances to (241, 1), sets VBlank, should fire NMI

	if !fired {
		t.Fatal("expected NMI callback to fire when VBlank sets with NMI enabled")
	}
}

func TestNMIDoesNotRefireOnStatusRead(t *testing.T) {
	p := newTestPPU()
	count := 0
	p.SetNMICallback(func() { count++ })
	p.WriteRegister(0x2000, 0x80)

	p.scanline = 241
	p.cycle = 0
	p.Step() // fires once
	p.ReadRegister(0x2002)

	if count != 1 {
		t.Fatalf("NMI fired %d times, want exactly 1 (status read must not refire it)", count)
	}
}

func TestNMIRefiresOnReenableWhileVBlankStillSet(t *testing.T) {
	p := newTestPPU()
	count := 0
	p.SetNMICallback(func() { count++ })
	p.WriteRegister(0x2000, 0x80)
	p.scanline = 241
	p.cycle = 0
	p.Step() // fires once, VBlank still set afterward

	p.WriteRegister(0x2000, 0x00) // disable
	p.WriteRegister(0x2000, 0x80) // re-enable while VBlank flag is still set

	if count != 2 {
		t.Fatalf("NMI fired %d times, want 2 (re-enable while VBlank set should refire)", count)
	}
}

func TestLoadPaletteFileReplacesActiveColorTable(t *testing.T) {
	p := newTestPPU()
	data := make([]byte, 192)
	data[0], data[1], data[2] = 0x11, 0x22, 0x33 // entry 0 -> distinctive RGB

	path := filepath.Join(t.TempDir(), "custom.pal")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture palette file: %v", err)
	}

	if err := p.LoadPaletteFile(path); err != nil {
		t.Fatalf("LoadPaletteFile returned an error: %v", err)
	}
	if got, want := p.colorToRGB(0), uint32(0x112233); got != want {
		t.Fatalf("colorToRGB(0) = %#06x, want %#06x after loading custom palette", got, want)
	}
}

func TestLoadPaletteFileRejectsWrongSize(t *testing.T) {
	p := newTestPPU()
	path := filepath.Join(t.TempDir(), "short.pal")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatalf("failed to write fixture palette file: %v", err)
	}

	if err := p.LoadPaletteFile(path); err == nil {
		t.Fatal("expected an error for a palette file that isn't 192 bytes")
	}
}

func TestLoadPaletteFileRejectsMissingFile(t *testing.T) {
	p := newTestPPU()
	if err := p.LoadPaletteFile(filepath.Join(t.TempDir(), "missing.pal")); err == nil {
		t.Fatal("expected an error for a nonexistent palette file")
	}
}

func TestVBlankClearedAtPreRenderLine(t *testing.T) {
	p := newTestPPU()
	p.ppuStatus |= 0x80
	p.sprite0HitFlag = true
	p.spriteOverflow = true
	p.scanline = -1
	p.cycle = 0
	p.Step()

	if p.IsVBlank() {
		t.Fatal("VBlank flag should clear at pre-render scanline cycle 1")
	}
	if p.ppuStatus&0x40 != 0 {
		t.Fatal("sprite-zero-hit flag should clear at pre-render scanline cycle 1")
	}
}

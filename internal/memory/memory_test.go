package memory

import "testing"

type fakePPU struct {
	lastReadAddr  uint16
	lastWriteAddr uint16
	lastWriteVal  uint8
	readValue     uint8
}

func (p *fakePPU) ReadRegister(address uint16) uint8 {
	p.lastReadAddr = address
	return p.readValue
}

func (p *fakePPU) WriteRegister(address uint16, value uint8) {
	p.lastWriteAddr = address
	p.lastWriteVal = value
}

type fakeAPU struct {
	lastWriteAddr uint16
	lastWriteVal  uint8
	status        uint8
}

func (a *fakeAPU) WriteRegister(address uint16, value uint8) {
	a.lastWriteAddr = address
	a.lastWriteVal = value
}

func (a *fakeAPU) ReadStatus() uint8 { return a.status }

type fakeInput struct {
	lastWriteAddr uint16
	lastWriteVal  uint8
	readValue     uint8
}

func (i *fakeInput) Read(address uint16) uint8 {
	return i.readValue
}

func (i *fakeInput) Write(address uint16, value uint8) {
	i.lastWriteAddr = address
	i.lastWriteVal = value
}

type fakeCartMem struct {
	prg  [0x8000]uint8
	chr  [0x2000]uint8
	vram [0x1000]uint8
}

func (c *fakeCartMem) ReadPRG(address uint16) uint8         { return c.prg[address&0x7FFF] }
func (c *fakeCartMem) WritePRG(address uint16, value uint8) { c.prg[address&0x7FFF] = value }
func (c *fakeCartMem) ReadCHR(address uint16) uint8         { return c.chr[address&0x1FFF] }
func (c *fakeCartMem) WriteCHR(address uint16, value uint8) { c.chr[address&0x1FFF] = value }
func (c *fakeCartMem) CartVRAMRead(address uint16) uint8    { return c.vram[address&0x0FFF] }
func (c *fakeCartMem) CartVRAMWrite(address uint16, value uint8) {
	c.vram[address&0x0FFF] = value
}

func TestCPUMemoryRAMMirroring(t *testing.T) {
	m := New(&fakePPU{}, &fakeAPU{}, &fakeCartMem{})
	m.Write(0x0000, 0x42)

	for _, mirror := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := m.Read(mirror); got != 0x42 {
			t.Fatalf("Read(%#04x) = %#02x, want 0x42 (RAM mirrored every 0x800)", mirror, got)
		}
	}
}

func TestCPUMemoryPPURegisterMirroring(t *testing.T) {
	ppu := &fakePPU{}
	m := New(ppu, &fakeAPU{}, &fakeCartMem{})

	m.Write(0x2001, 0x11)
	if ppu.lastWriteAddr != 0x2001 || ppu.lastWriteVal != 0x11 {
		t.Fatalf("write to $2001 not forwarded correctly: addr=%#04x val=%#02x", ppu.lastWriteAddr, ppu.lastWriteVal)
	}

	m.Write(0x2009, 0x22) // mirrors $2001 (0x2009 & 0x2007 == 0x2001)
	if ppu.lastWriteAddr != 0x2001 || ppu.lastWriteVal != 0x22 {
		t.Fatalf("write to $2009 should mirror to $2001, got addr=%#04x", ppu.lastWriteAddr)
	}
}

func TestCPUMemoryAPUStatusRead(t *testing.T) {
	apu := &fakeAPU{status: 0x5A}
	m := New(&fakePPU{}, apu, &fakeCartMem{})

	if got := m.Read(0x4015); got != 0x5A {
		t.Fatalf("Read($4015) = %#02x, want 0x5A", got)
	}
}

func TestCPUMemoryControllerPorts(t *testing.T) {
	in := &fakeInput{readValue: 0x01}
	m := New(&fakePPU{}, &fakeAPU{}, &fakeCartMem{})
	m.SetInputSystem(in)

	m.Write(0x4016, 0x01)
	if in.lastWriteAddr != 0x4016 || in.lastWriteVal != 0x01 {
		t.Fatal("strobe write to $4016 not forwarded to input system")
	}
	if got := m.Read(0x4016); got != 0x01 {
		t.Fatalf("Read($4016) = %#02x, want 0x01", got)
	}
}

func TestCPUMemoryOAMDMACallback(t *testing.T) {
	var called bool
	var page uint8
	m := New(&fakePPU{}, &fakeAPU{}, &fakeCartMem{})
	m.SetDMACallback(func(p uint8) {
		called = true
		page = p
	})

	m.Write(0x4014, 0x02)
	if !called || page != 0x02 {
		t.Fatalf("DMA callback not invoked with page 0x02 (called=%v page=%#02x)", called, page)
	}
}

func TestCPUMemoryCartridgePRGWindow(t *testing.T) {
	cart := &fakeCartMem{}
	m := New(&fakePPU{}, &fakeAPU{}, cart)

	m.Write(0x8000, 0x99)
	if cart.prg[0] != 0x99 {
		t.Fatal("write to $8000 should reach cartridge PRG space")
	}
	if got := m.Read(0x8000); got != 0x99 {
		t.Fatalf("Read($8000) = %#02x, want 0x99", got)
	}
}

func TestPPUMemoryNametableHorizontalMirroring(t *testing.T) {
	cart := &fakeCartMem{}
	pm := NewPPUMemory(cart, MirrorHorizontal)

	pm.Write(0x2000, 0x11) // table 0
	pm.Write(0x2800, 0x22) // table 2, the second physical table under horizontal

	if got := pm.Read(0x2400); got != 0x11 {
		t.Fatalf("Read($2400) = %#02x, want 0x11 (horizontal mirrors table 0 into table 1)", got)
	}
	if got := pm.Read(0x2C00); got != 0x22 {
		t.Fatalf("Read($2C00) = %#02x, want 0x22 (horizontal mirrors table 2 into table 3)", got)
	}
}

func TestPPUMemoryNametableVerticalMirroring(t *testing.T) {
	cart := &fakeCartMem{}
	pm := NewPPUMemory(cart, MirrorVertical)

	pm.Write(0x2000, 0x33) // table 0

	if got := pm.Read(0x2800); got != 0x33 {
		t.Fatalf("Read($2800) = %#02x, want 0x33 (vertical mirrors table 2 from table 0)", got)
	}
}

func TestPPUMemoryFourScreenDelegatesToCartridge(t *testing.T) {
	cart := &fakeCartMem{}
	pm := NewPPUMemory(cart, MirrorFourScreen)

	pm.Write(0x2C00, 0x55) // table 3, only reachable via cartridge VRAM in four-screen mode
	if got := pm.Read(0x2C00); got != 0x55 {
		t.Fatalf("Read($2C00) = %#02x, want 0x55", got)
	}
	if cart.vram[0x0C00] != 0x55 {
		t.Fatal("four-screen nametable writes should land in the cartridge's extra VRAM")
	}
}

func TestPPUMemoryPaletteBackgroundMirrorQuirk(t *testing.T) {
	cart := &fakeCartMem{}
	pm := NewPPUMemory(cart, MirrorHorizontal)

	pm.Write(0x3F00, 0x0A) // universal background color
	if got := pm.Read(0x3F10); got != 0x0A {
		t.Fatalf("Read($3F10) = %#02x, want 0x0A (mirrors $3F00)", got)
	}

	pm.Write(0x3F14, 0x0B)
	if got := pm.Read(0x3F04); got != 0x0B {
		t.Fatalf("Read($3F04) = %#02x, want 0x0B ($3F14 mirrors onto $3F04)", got)
	}
}

func TestPPUMemoryPatternTableDelegatesToCartridgeCHR(t *testing.T) {
	cart := &fakeCartMem{}
	pm := NewPPUMemory(cart, MirrorHorizontal)

	pm.Write(0x0010, 0x77)
	if cart.chr[0x0010] != 0x77 {
		t.Fatal("writes under $2000 should reach cartridge CHR space")
	}
	if got := pm.Read(0x0010); got != 0x77 {
		t.Fatalf("Read($0010) = %#02x, want 0x77", got)
	}
}

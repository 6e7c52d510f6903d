package bus

import (
	"bytes"
	"testing"

	"nesgo/internal/cartridge"
)

// buildNROM assembles a minimal one-bank NROM image with the reset vector
// set to $8000 and all other vectors zeroed.
func buildNROM() *cartridge.Cartridge {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1) // 1x16KB PRG
	buf.WriteByte(1) // 1x8KB CHR
	buf.WriteByte(0) // flags6: horizontal mirroring, mapper low nibble 0
	buf.WriteByte(0) // flags7
	buf.Write(make([]byte, 8))

	prg := make([]byte, 16384)
	prg[0x3FFC] = 0x00 // reset vector low  ($FFFC -> offset 0x3FFC in mirrored bank)
	prg[0x3FFD] = 0x80 // reset vector high -> PC = 0x8000
	buf.Write(prg)
	buf.Write(make([]byte, 8192)) // CHR ROM

	cart, err := cartridge.LoadFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		panic(err)
	}
	return cart
}

func TestBusStepMaintainsThreeToOnePPURatio(t *testing.T) {
	b := New()
	b.LoadCartridge(buildNROM())

	startPPUCycles := b.ppuCycles
	cpuCycles := b.Step()

	wantPPUCycles := cpuCycles * 3
	if got := b.ppuCycles - startPPUCycles; got != wantPPUCycles {
		t.Fatalf("PPU advanced %d cycles for %d CPU cycles, want %d (3:1 ratio)", got, cpuCycles, wantPPUCycles)
	}
}

func TestBusRatioHoldsAcrossNMIDispatch(t *testing.T) {
	b := New()
	b.LoadCartridge(buildNROM())

	b.nmiPending = true
	startPPUCycles := b.ppuCycles
	cpuCycles := b.Step() // should dispatch the NMI (7 cycles) instead of a normal instruction

	if cpuCycles != 7 {
		t.Fatalf("cpuCycles = %d, want 7 (NMI dispatch)", cpuCycles)
	}
	if got := b.ppuCycles - startPPUCycles; got != 21 {
		t.Fatalf("PPU advanced %d cycles across NMI dispatch, want 21 (7*3)", got)
	}
}

func TestBusOAMDMAStallsFor513Cycles(t *testing.T) {
	b := New()
	b.LoadCartridge(buildNROM())

	b.TriggerOAMDMA(0x02)
	if !b.IsDMAInProgress() {
		t.Fatal("expected DMA to be in progress immediately after TriggerOAMDMA")
	}

	total := uint64(0)
	for b.IsDMAInProgress() {
		total += b.Step()
	}
	if total != 513 {
		t.Fatalf("total stalled cycles = %d, want 513 (started on an even CPU cycle)", total)
	}
}

func TestBusOAMDMAExtraCycleOnOddStart(t *testing.T) {
	b := New()
	b.LoadCartridge(buildNROM())
	b.cpuCycles = 1 // force an odd starting cycle

	b.TriggerOAMDMA(0x02)
	total := uint64(0)
	for b.IsDMAInProgress() {
		total += b.Step()
	}
	if total != 514 {
		t.Fatalf("total stalled cycles = %d, want 514 (started on an odd CPU cycle)", total)
	}
}

func TestBusOAMDMACopiesAllTwoHundredFiftySixBytes(t *testing.T) {
	b := New()
	b.LoadCartridge(buildNROM())

	for i := 0; i < 256; i++ {
		b.Memory.Write(0x0200+uint16(i), uint8(i))
	}

	b.TriggerOAMDMA(0x02)
	for b.IsDMAInProgress() {
		b.Step()
	}

	for i := 0; i < 256; i++ {
		if got := b.PPU.ReadOAMByte(uint8(i)); got != uint8(i) {
			t.Fatalf("OAM[%d] = %#02x, want %#02x", i, got, uint8(i))
		}
	}
}

func TestBusOAMDMAStartsAtCurrentOAMAddr(t *testing.T) {
	b := New()
	b.LoadCartridge(buildNROM())

	for i := 0; i < 256; i++ {
		b.Memory.Write(0x0200+uint16(i), uint8(i))
	}
	b.PPU.WriteRegister(0x2003, 0x10) // OAMADDR = 0x10

	b.TriggerOAMDMA(0x02)
	for b.IsDMAInProgress() {
		b.Step()
	}

	for i := 0; i < 256; i++ {
		want := uint8(i)
		oamIndex := uint8(0x10) + uint8(i) // wraps mod 256
		if got := b.PPU.ReadOAMByte(oamIndex); got != want {
			t.Fatalf("OAM[%#02x] = %#02x, want %#02x (DMA must start at OAMADDR, not 0)", oamIndex, got, want)
		}
	}
}

func TestBusFlatModeCPUIsolatedFromMappedDevices(t *testing.T) {
	b, flat := NewFlat()
	flat.LoadAt(0x8000, []uint8{0xA9, 0x42}) // LDA #$42
	flat.Write(0xFFFC, 0x00)
	flat.Write(0xFFFD, 0x80)
	b.CPU.ResetToVector(0x8000)

	b.CPU.Step()
	if b.CPU.A != 0x42 {
		t.Fatalf("A = %#02x, want 0x42 (flat memory should drive the CPU directly)", b.CPU.A)
	}
}

func TestBusRunAdvancesFrameCount(t *testing.T) {
	b := New()
	b.LoadCartridge(buildNROM())

	b.Run(1)
	if b.GetFrameCount() != 1 {
		t.Fatalf("GetFrameCount() = %d, want 1 after Run(1)", b.GetFrameCount())
	}
}

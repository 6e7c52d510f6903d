// Package memory implements the NES CPU and PPU address-space maps: the
// CPU's 64KB view (RAM, mirrored register windows, cartridge space) and
// the PPU's 16KB view (pattern tables, nametables with mirroring, and
// palette RAM).
package memory

import "nesgo/internal/cartridge"

// MirrorMode aliases cartridge.MirrorMode so callers that only deal in
// memory don't need to import the cartridge package directly.
type MirrorMode = cartridge.MirrorMode

const (
	MirrorHorizontal        = cartridge.MirrorHorizontal
	MirrorVertical          = cartridge.MirrorVertical
	MirrorSingleScreenLower = cartridge.MirrorSingleScreenLower
	MirrorSingleScreenUpper = cartridge.MirrorSingleScreenUpper
	MirrorFourScreen        = cartridge.MirrorFourScreen
)

// PPUInterface is the register-level view of the PPU the CPU bus talks to.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface is the register-level view of the APU the CPU bus talks to.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface is the register-level view of the controller ports.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the subset of *cartridge.Cartridge the memory maps
// need; defined locally so tests can substitute a fake cartridge.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	CartVRAMRead(address uint16) uint8
	CartVRAMWrite(address uint16, value uint8)
}

// Memory implements the CPU's view of the address space: 2KB of internal
// RAM mirrored through $1FFF, PPU/APU/controller register windows, and
// the cartridge beyond $4020.
type Memory struct {
	ram [0x800]uint8

	ppuRegisters PPUInterface
	apuRegisters APUInterface
	inputSystem  InputInterface
	cartridge    CartridgeInterface

	dmaCallback  func(uint8)
	openBusValue uint8
}

// New creates a Memory bound to the given PPU, APU, and cartridge. RAM
// starts zeroed: the spec calls for deterministic, reproducible power-on
// state rather than modeling real hardware's semi-random RAM contents.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Memory {
	return &Memory{
		ppuRegisters: ppu,
		apuRegisters: apu,
		cartridge:    cart,
	}
}

// SetInputSystem attaches the controller port handler.
func (m *Memory) SetInputSystem(input InputInterface) {
	m.inputSystem = input
}

// SetDMACallback installs the bus's OAM DMA coprocessor. When set, a write
// to $4014 goes through it instead of the fallback immediate transfer so
// the bus can account for DMA stall cycles.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// Read reads a byte from the CPU address space, updating the open-bus
// latch with whatever value is returned.
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = m.ram[address&0x07FF]

	case address < 0x4000:
		value = m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch {
		case address == 0x4015:
			value = m.apuRegisters.ReadStatus()
		case address == 0x4016 || address == 0x4017:
			if m.inputSystem != nil {
				value = m.inputSystem.Read(address)
			}
		default:
			value = m.openBusValue
		}

	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			value = m.cartridge.ReadPRG(address)
		} else {
			value = m.openBusValue
		}

	case address < 0x8000:
		value = m.openBusValue

	default:
		if m.cartridge != nil {
			value = m.cartridge.ReadPRG(address)
		} else {
			value = m.openBusValue
		}
	}

	m.openBusValue = value
	return value
}

// Write writes a byte to the CPU address space.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if m.dmaCallback != nil {
				m.dmaCallback(value)
			} else {
				m.performOAMDMA(value)
			}
		case address == 0x4016:
			if m.inputSystem != nil {
				m.inputSystem.Write(address, value)
			}
		case address <= 0x4013 || address == 0x4015 || address == 0x4017:
			m.apuRegisters.WriteRegister(address, value)
		}
		// $4018-$401F (APU/IO test mode registers) are unmapped, ignored.

	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}

	case address < 0x8000:
		// Cartridge expansion area ($4020-$5FFF): unmapped, ignored.

	default:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}
	}
}

// performOAMDMA is the immediate, non-stalling fallback OAM DMA used when
// no bus-level DMA callback has been installed (e.g. in unit tests that
// exercise Memory standalone).
func (m *Memory) performOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		m.ppuRegisters.WriteRegister(0x2004, m.Read(base+i))
	}
}

// PPUMemory implements the PPU's 16KB address space: pattern tables
// (delegated to the cartridge/mapper), nametables (mirrored per cartridge
// mirroring mode), and palette RAM.
type PPUMemory struct {
	vram       [0x1000]uint8
	paletteRAM [32]uint8
	cartridge  CartridgeInterface
	mirroring  MirrorMode
}

// NewPPUMemory creates a PPU memory map bound to cart with the given
// mirroring mode, and seeds palette RAM's background-color slots with
// black, matching the PPU's actual power-on palette contents.
func NewPPUMemory(cart CartridgeInterface, mirroring MirrorMode) *PPUMemory {
	pm := &PPUMemory{cartridge: cart, mirroring: mirroring}
	for i := 0; i < 32; i += 4 {
		pm.paletteRAM[i] = 0x0F
	}
	return pm
}

// SetMirroring updates the mirroring mode, e.g. after a mapper register
// write changes it mid-game (MMC1 and similar mappers do this).
func (pm *PPUMemory) SetMirroring(mode MirrorMode) {
	pm.mirroring = mode
}

// Read reads a byte from the 14-bit PPU address space.
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pm.cartridge.ReadCHR(address)
	case address < 0x3000:
		return pm.readNametable(address)
	case address < 0x3F00:
		return pm.readNametable(address - 0x1000)
	default:
		return pm.readPalette(address)
	}
}

// Write writes a byte to the 14-bit PPU address space.
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pm.cartridge.WriteCHR(address, value)
	case address < 0x3000:
		pm.writeNametable(address, value)
	case address < 0x3F00:
		pm.writeNametable(address-0x1000, value)
	default:
		pm.writePalette(address, value)
	}
}

func (pm *PPUMemory) readNametable(address uint16) uint8 {
	if pm.mirroring == MirrorFourScreen {
		return pm.cartridge.CartVRAMRead(address & 0x0FFF)
	}
	return pm.vram[pm.getNametableIndex(address)]
}

func (pm *PPUMemory) writeNametable(address uint16, value uint8) {
	if pm.mirroring == MirrorFourScreen {
		pm.cartridge.CartVRAMWrite(address&0x0FFF, value)
		return
	}
	pm.vram[pm.getNametableIndex(address)] = value
}

// getNametableIndex maps a $2000-$2FFF address onto the 2KB of physical
// VRAM according to the current mirroring mode.
func (pm *PPUMemory) getNametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	table := (address >> 10) & 3
	offset := address & 0x3FF

	switch pm.mirroring {
	case MirrorHorizontal:
		if table >= 2 {
			return 0x400 + offset
		}
		return offset
	case MirrorVertical:
		if table == 1 || table == 3 {
			return 0x400 + offset
		}
		return offset
	case MirrorSingleScreenLower:
		return offset
	case MirrorSingleScreenUpper:
		return 0x400 + offset
	default:
		return offset
	}
}

// readPalette reads palette RAM, folding the four background-color
// mirror slots ($3F10/$14/$18/$1C) onto their universal-background
// counterparts.
func (pm *PPUMemory) readPalette(address uint16) uint8 {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	return pm.paletteRAM[index]
}

func (pm *PPUMemory) writePalette(address uint16, value uint8) {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	pm.paletteRAM[index] = value & 0x3F
}

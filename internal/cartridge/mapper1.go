package cartridge

// Mapper1 implements MMC1: a serial shift register that loads one of four
// internal registers (Control, CHR bank 0, CHR bank 1, PRG bank) every
// fifth consecutive write to $8000-$FFFF, selected by address bits 13-14.
// See https://www.nesdev.org/wiki/MMC1 (cross-checked against the MMC1
// mapper in other_examples/skip2-nes for the bank-select arithmetic).
type Mapper1 struct {
	cart *Cartridge

	shiftReg   uint8
	shiftCount int

	control uint8 // mirroring(0-1), prg mode(2-3), chr mode(4)
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgBankCount int // number of 16KB PRG banks
	chrBankCount int // number of 4KB CHR banks

	prgOffsets [2]int // byte offset of each 16KB PRG window
	chrOffsets [2]int // byte offset of each 4KB CHR window
}

// NewMapper1 creates an MMC1 mapper bound to cart, powered on with
// Control forced to fix-last-bank PRG mode (the hardware reset state).
func NewMapper1(cart *Cartridge) *Mapper1 {
	m := &Mapper1{
		cart:         cart,
		control:      0x0C,
		prgBankCount: max(1, len(cart.prgROM)/0x4000),
		chrBankCount: max(1, len(cart.chrROM)/0x1000),
	}
	m.updateOffsets()
	return m
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ReadPRG reads PRG-RAM ($6000-$7FFF) or a bank-switched PRG-ROM window.
func (m *Mapper1) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		window := 0
		if address >= 0xC000 {
			window = 1
		}
		offset := m.prgOffsets[window] + int(address&0x3FFF)
		return m.cart.prgROM[offset%len(m.cart.prgROM)]
	case address >= 0x6000:
		return m.cart.sram[address-0x6000]
	default:
		return 0xFF
	}
}

// WritePRG accepts PRG-RAM writes directly and feeds the serial shift
// register for any write into $8000-$FFFF.
func (m *Mapper1) WritePRG(address uint16, value uint8) {
	switch {
	case address >= 0x6000 && address < 0x8000:
		m.cart.sram[address-0x6000] = value
		return
	case address < 0x8000:
		return
	}

	if value&0x80 != 0 {
		m.shiftReg = 0
		m.shiftCount = 0
		m.control |= 0x0C
		m.updateOffsets()
		return
	}

	m.shiftReg = (m.shiftReg >> 1) | ((value & 1) << 4)
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	switch address & 0xE000 {
	case 0x8000:
		m.control = m.shiftReg
	case 0xA000:
		m.chrBank0 = m.shiftReg
	case 0xC000:
		m.chrBank1 = m.shiftReg
	case 0xE000:
		m.prgBank = m.shiftReg
	}

	m.shiftReg = 0
	m.shiftCount = 0
	m.updateOffsets()
}

// ReadCHR reads a bank-switched CHR window (ROM or RAM).
func (m *Mapper1) ReadCHR(address uint16) uint8 {
	window, offset := m.chrWindow(address)
	idx := m.chrOffsets[window] + offset
	return m.cart.chrROM[idx%len(m.cart.chrROM)]
}

// WriteCHR writes CHR-RAM at the bank-switched window; a no-op on CHR-ROM.
func (m *Mapper1) WriteCHR(address uint16, value uint8) {
	if !m.cart.hasCHRRAM {
		return
	}
	window, offset := m.chrWindow(address)
	idx := (m.chrOffsets[window] + offset) % len(m.cart.chrROM)
	m.cart.chrROM[idx] = value
}

func (m *Mapper1) chrWindow(address uint16) (window int, offset int) {
	if address < 0x1000 {
		return 0, int(address)
	}
	return 1, int(address - 0x1000)
}

// Mirror decodes Control bits 0-1 into a MirrorMode.
func (m *Mapper1) Mirror() MirrorMode {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleScreenLower
	case 1:
		return MirrorSingleScreenUpper
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

// updateOffsets recomputes PRG/CHR bank offsets from the current register
// values. Called after every register write so reads are a flat lookup.
func (m *Mapper1) updateOffsets() {
	prgMode := (m.control >> 2) & 0x03
	prg := int(m.prgBank&0x0F) % m.prgBankCount
	last := m.prgBankCount - 1

	switch prgMode {
	case 0, 1: // 32KB switch: ignore low bit of bank select
		base := (prg &^ 1) % m.prgBankCount
		m.prgOffsets[0] = base * 0x4000
		m.prgOffsets[1] = ((base + 1) % m.prgBankCount) * 0x4000
	case 2: // fix first bank at $8000, switch $C000
		m.prgOffsets[0] = 0
		m.prgOffsets[1] = prg * 0x4000
	default: // fix last bank at $C000, switch $8000
		m.prgOffsets[0] = prg * 0x4000
		m.prgOffsets[1] = last * 0x4000
	}

	if m.control&0x10 == 0 { // 8KB CHR mode: chrBank0 selects the 8KB pair
		base := (int(m.chrBank0&0x1E) / 2) % max(1, m.chrBankCount/2)
		m.chrOffsets[0] = base * 0x2000
		m.chrOffsets[1] = m.chrOffsets[0] + 0x1000
	} else {
		m.chrOffsets[0] = (int(m.chrBank0) % m.chrBankCount) * 0x1000
		m.chrOffsets[1] = (int(m.chrBank1) % m.chrBankCount) * 0x1000
	}
}

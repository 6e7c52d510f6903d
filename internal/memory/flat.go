package memory

// FlatMemory is a 64KiB flat array standing in for the full CPU address
// map. It implements the same interface the CPU reads and writes through,
// but with no PPU/APU/cartridge routing at all - every address is just an
// array slot. This is for CPU unit testing against functional test ROMs
// (e.g. nestest in automated mode) that don't exercise the PPU/APU side of
// the bus and expect a uniform, unmirrored address space instead.
type FlatMemory struct {
	ram [65536]uint8
}

// NewFlat creates a FlatMemory with all bytes zeroed.
func NewFlat() *FlatMemory {
	return &FlatMemory{}
}

// Read returns the byte at address with no side effects.
func (m *FlatMemory) Read(address uint16) uint8 {
	return m.ram[address]
}

// Write stores value at address with no side effects.
func (m *FlatMemory) Write(address uint16, value uint8) {
	m.ram[address] = value
}

// LoadAt copies data into the flat array starting at address, for loading
// a test ROM image directly into place.
func (m *FlatMemory) LoadAt(address uint16, data []uint8) {
	copy(m.ram[address:], data)
}

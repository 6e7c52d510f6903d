// Package cpu implements a cycle-accurate MOS 6502 core as used by the
// Ricoh 2A03 in the NES: no binary-coded decimal mode, plus the common
// set of unofficial opcodes exercised by real cartridges and test ROMs.
package cpu

// MemoryInterface is the bus the CPU reads and writes through. Reads and
// writes may have side effects (PPU/APU register access, OAM DMA, mapper
// bank switching) so every access goes through this interface rather than
// a flat array.
type MemoryInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// addressMode identifies how an instruction computes its operand address.
type addressMode int

const (
	modeImplied addressMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

// Instruction describes one opcode's decode shape: its handler, addressing
// mode, byte length, and base cycle cost (before any page-cross or branch
// penalty is added).
type Instruction struct {
	Name     string
	Mode     addressMode
	Bytes    int
	Cycles   int
	Execute  func(cpu *CPU, address uint16, mode addressMode) int
}

// CPU holds 6502 register and flag state plus the pending-interrupt lines
// latched by the bus.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	// Processor status flags, held individually rather than packed into
	// a byte so instruction handlers read/write them directly.
	C bool // carry
	Z bool // zero
	I bool // interrupt disable
	D bool // decimal (unused on the 2A03, but the flag bit still exists)
	B bool // break (only meaningful in the pushed status byte)
	U bool // unused bit, always pushed as 1
	V bool // overflow
	N bool // negative

	Memory MemoryInterface
	cycles uint64

	nmiPending bool
	irqLine    bool // level-triggered; true while any source asserts IRQ

	instructions [256]*Instruction
}

// New creates a CPU bound to mem. Call Reset before the first Step.
func New(mem MemoryInterface) *CPU {
	cpu := &CPU{Memory: mem, SP: 0xFD}
	cpu.initInstructions()
	return cpu
}

// Reset performs the 6502 reset sequence: seven dummy internal cycles
// followed by loading PC from the reset vector at $FFFC/$FFFD.
func (cpu *CPU) Reset() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.SP = 0xFD
	cpu.C, cpu.Z, cpu.D, cpu.B, cpu.V, cpu.N = false, false, false, false, false, false
	cpu.I = true
	cpu.U = true
	cpu.nmiPending = false
	cpu.irqLine = false

	lo := uint16(cpu.Memory.Read(0xFFFC))
	hi := uint16(cpu.Memory.Read(0xFFFD))
	cpu.PC = (hi << 8) | lo
	cpu.cycles = 7
}

// ResetToVector forces PC directly, bypassing the vector fetch: useful for
// test harnesses (e.g. nestest automated mode) that start execution at a
// fixed address instead of whatever $FFFC/$FFFD contains.
func (cpu *CPU) ResetToVector(pc uint16) {
	cpu.Reset()
	cpu.PC = pc
}

// SetNMI requests an NMI; the edge is one-shot, serviced on the next Step.
func (cpu *CPU) SetNMI() {
	cpu.nmiPending = true
}

// SetIRQLine sets the level of the IRQ line as asserted by mapper or APU
// frame-counter/DMC sources. The CPU samples this level once per Step and
// services it only when the interrupt-disable flag is clear.
func (cpu *CPU) SetIRQLine(asserted bool) {
	cpu.irqLine = asserted
}

// Cycles returns the running total of CPU cycles since the last Reset.
func (cpu *CPU) Cycles() uint64 {
	return cpu.cycles
}

// Step executes exactly one instruction (or, if an interrupt is pending,
// services the interrupt instead) and returns the number of CPU cycles
// consumed. Interrupt-dispatch cycles are folded into this return value
// so the bus can always advance the PPU by exactly 3x whatever Step
// reports, preserving the fixed 3:1 PPU:CPU clock ratio across interrupt
// boundaries.
func (cpu *CPU) Step() int {
	if cpu.nmiPending {
		cpu.nmiPending = false
		return cpu.dispatchInterrupt(0xFFFA, false)
	}
	if cpu.irqLine && !cpu.I {
		return cpu.dispatchInterrupt(0xFFFE, false)
	}

	opcode := cpu.Memory.Read(cpu.PC)
	inst := cpu.instructions[opcode]
	if inst == nil {
		// Unimplemented opcode: treat as a one-byte, two-cycle NOP so
		// execution doesn't stall outright on a stray data byte.
		cpu.PC++
		return 2
	}

	startPC := cpu.PC
	cpu.PC++

	address, pageCrossed := cpu.operandAddress(inst.Mode, startPC+1)
	if inst.Bytes > 1 {
		cpu.PC = startPC + uint16(inst.Bytes)
	}

	extra := inst.Execute(cpu, address, inst.Mode)
	total := inst.Cycles + extra
	if pageCrossed && instructionPenalizesPageCross(opcode) {
		total++
	}

	cpu.cycles += uint64(total)
	return total
}

// dispatchInterrupt pushes PC and status, sets I, and loads PC from the
// given vector. brk is true only for BRK's software interrupt, which
// pushes status with the B flag set; hardware NMI/IRQ push it clear.
func (cpu *CPU) dispatchInterrupt(vector uint16, brk bool) int {
	cpu.push16(cpu.PC)
	status := cpu.statusByte(brk)
	cpu.push8(status)
	cpu.I = true

	lo := uint16(cpu.Memory.Read(vector))
	hi := uint16(cpu.Memory.Read(vector + 1))
	cpu.PC = (hi << 8) | lo

	cpu.cycles += 7
	return 7
}

// instructionPenalizesPageCross reports whether opcode's addressing mode
// incurs an extra cycle when the indexed effective address crosses a page
// boundary. Store instructions and a handful of read-modify-write opcodes
// always pay the indexed-addressing cost regardless of crossing, so they
// are excluded here even though their mode is indexed.
func instructionPenalizesPageCross(opcode uint8) bool {
	switch opcode {
	// STA/STX/STY and RMW instructions in indexed modes: fixed cost,
	// no page-cross bonus cycle.
	case 0x9D, 0x99, 0x91, // STA abs,X / abs,Y / (ind),Y
		0x1E, 0x3E, 0x5E, 0x7E, // ASL/ROL/LSR/ROR abs,X
		0xDE, 0xFE, // DEC/INC abs,X
		0xFB, 0xDB, 0x7B, 0x5B, 0x3B, 0x1B, // SLO/RLA/SRE/RRA/DCP/ISB abs,Y
		0x1F, 0x3F, 0x5F, 0x7F, 0xDF, 0xFF, // SLO/RLA/SRE/RRA/DCP/ISB abs,X
		0x13, 0x33, 0x53, 0x73, 0xD3, 0xF3: // SLO/RLA/SRE/RRA/DCP/ISB (zp),Y
		return false
	default:
		return true
	}
}

// operandAddress computes the effective address for mode, given the
// address of the instruction's first operand byte. It reports whether an
// indexed computation crossed a page boundary (irrelevant for modes that
// don't index).
func (cpu *CPU) operandAddress(mode addressMode, operandPC uint16) (uint16, bool) {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0, false
	case modeImmediate:
		return operandPC, false
	case modeZeroPage:
		return uint16(cpu.Memory.Read(operandPC)), false
	case modeZeroPageX:
		return uint16(cpu.Memory.Read(operandPC) + cpu.X), false
	case modeZeroPageY:
		return uint16(cpu.Memory.Read(operandPC) + cpu.Y), false
	case modeAbsolute:
		return cpu.read16(operandPC), false
	case modeAbsoluteX:
		base := cpu.read16(operandPC)
		addr := base + uint16(cpu.X)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case modeAbsoluteY:
		base := cpu.read16(operandPC)
		addr := base + uint16(cpu.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case modeIndirect:
		ptr := cpu.read16(operandPC)
		return cpu.read16Wrapped(ptr), false
	case modeIndirectX:
		zp := cpu.Memory.Read(operandPC) + cpu.X
		lo := uint16(cpu.Memory.Read(uint16(zp)))
		hi := uint16(cpu.Memory.Read(uint16(zp + 1)))
		return (hi << 8) | lo, false
	case modeIndirectY:
		zp := cpu.Memory.Read(operandPC)
		lo := uint16(cpu.Memory.Read(uint16(zp)))
		hi := uint16(cpu.Memory.Read(uint16(zp + 1)))
		base := (hi << 8) | lo
		addr := base + uint16(cpu.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case modeRelative:
		return operandPC, false
	default:
		return 0, false
	}
}

// read16 reads a little-endian word, straddling page boundaries normally.
func (cpu *CPU) read16(address uint16) uint16 {
	lo := uint16(cpu.Memory.Read(address))
	hi := uint16(cpu.Memory.Read(address + 1))
	return (hi << 8) | lo
}

// read16Wrapped reproduces the 6502's JMP ($xxFF) page-wrap bug: the high
// byte is fetched from the start of the same page rather than the next.
func (cpu *CPU) read16Wrapped(address uint16) uint16 {
	lo := uint16(cpu.Memory.Read(address))
	hiAddr := (address & 0xFF00) | uint16(uint8(address)+1)
	hi := uint16(cpu.Memory.Read(hiAddr))
	return (hi << 8) | lo
}

func (cpu *CPU) push8(value uint8) {
	cpu.Memory.Write(0x0100+uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) pop8() uint8 {
	cpu.SP++
	return cpu.Memory.Read(0x0100 + uint16(cpu.SP))
}

func (cpu *CPU) push16(value uint16) {
	cpu.push8(uint8(value >> 8))
	cpu.push8(uint8(value))
}

func (cpu *CPU) pop16() uint16 {
	lo := uint16(cpu.pop8())
	hi := uint16(cpu.pop8())
	return (hi << 8) | lo
}

// statusByte packs the flags into the pushed processor-status byte. brk
// selects whether bit 4 (B) is set, matching BRK/PHP (set) vs NMI/IRQ
// (clear).
func (cpu *CPU) statusByte(brk bool) uint8 {
	var s uint8
	if cpu.C {
		s |= 0x01
	}
	if cpu.Z {
		s |= 0x02
	}
	if cpu.I {
		s |= 0x04
	}
	if cpu.D {
		s |= 0x08
	}
	if brk {
		s |= 0x10
	}
	s |= 0x20
	if cpu.V {
		s |= 0x40
	}
	if cpu.N {
		s |= 0x80
	}
	return s
}

func (cpu *CPU) setStatusByte(s uint8) {
	cpu.C = s&0x01 != 0
	cpu.Z = s&0x02 != 0
	cpu.I = s&0x04 != 0
	cpu.D = s&0x08 != 0
	cpu.V = s&0x40 != 0
	cpu.N = s&0x80 != 0
}

// GetStatusByte returns the current flags packed as a processor-status
// byte (bit 4 set, matching PHP), for register-snapshot inspection.
func (cpu *CPU) GetStatusByte() uint8 {
	return cpu.statusByte(true)
}

func setZN(cpu *CPU, value uint8) {
	cpu.Z = value == 0
	cpu.N = value&0x80 != 0
}

// addWithCarry implements ADC's addition and overflow-flag semantics;
// SBC reuses it by feeding the one's complement of the memory operand.
func (cpu *CPU) addWithCarry(operand uint8) {
	var carryIn uint16
	if cpu.C {
		carryIn = 1
	}
	sum := uint16(cpu.A) + uint16(operand) + carryIn
	result := uint8(sum)

	cpu.C = sum > 0xFF
	cpu.V = (uint8(cpu.A)^result)&(operand^result)&0x80 != 0
	cpu.A = result
	setZN(cpu, cpu.A)
}

func (cpu *CPU) compare(reg uint8, value uint8) {
	diff := reg - value
	cpu.C = reg >= value
	setZN(cpu, diff)
}

func (cpu *CPU) branch(address uint16, take bool) int {
	if !take {
		return 0
	}
	offset := int8(cpu.Memory.Read(address))
	target := uint16(int32(address) + 1 + int32(offset))
	extra := 1
	if (address+1)&0xFF00 != target&0xFF00 {
		extra++
	}
	cpu.PC = target
	return extra
}

func opLDA(cpu *CPU, address uint16, mode addressMode) int {
	cpu.A = cpu.Memory.Read(address)
	setZN(cpu, cpu.A)
	return 0
}

func opLDX(cpu *CPU, address uint16, mode addressMode) int {
	cpu.X = cpu.Memory.Read(address)
	setZN(cpu, cpu.X)
	return 0
}

func opLDY(cpu *CPU, address uint16, mode addressMode) int {
	cpu.Y = cpu.Memory.Read(address)
	setZN(cpu, cpu.Y)
	return 0
}

func opSTA(cpu *CPU, address uint16, mode addressMode) int {
	cpu.Memory.Write(address, cpu.A)
	return 0
}

func opSTX(cpu *CPU, address uint16, mode addressMode) int {
	cpu.Memory.Write(address, cpu.X)
	return 0
}

func opSTY(cpu *CPU, address uint16, mode addressMode) int {
	cpu.Memory.Write(address, cpu.Y)
	return 0
}

func opADC(cpu *CPU, address uint16, mode addressMode) int {
	cpu.addWithCarry(cpu.Memory.Read(address))
	return 0
}

func opSBC(cpu *CPU, address uint16, mode addressMode) int {
	cpu.addWithCarry(^cpu.Memory.Read(address))
	return 0
}

func opAND(cpu *CPU, address uint16, mode addressMode) int {
	cpu.A &= cpu.Memory.Read(address)
	setZN(cpu, cpu.A)
	return 0
}

func opORA(cpu *CPU, address uint16, mode addressMode) int {
	cpu.A |= cpu.Memory.Read(address)
	setZN(cpu, cpu.A)
	return 0
}

func opEOR(cpu *CPU, address uint16, mode addressMode) int {
	cpu.A ^= cpu.Memory.Read(address)
	setZN(cpu, cpu.A)
	return 0
}

func opASL(cpu *CPU, address uint16, mode addressMode) int {
	if mode == modeAccumulator {
		cpu.C = cpu.A&0x80 != 0
		cpu.A <<= 1
		setZN(cpu, cpu.A)
		return 0
	}
	value := cpu.Memory.Read(address)
	cpu.C = value&0x80 != 0
	value <<= 1
	cpu.Memory.Write(address, value)
	setZN(cpu, value)
	return 0
}

func opLSR(cpu *CPU, address uint16, mode addressMode) int {
	if mode == modeAccumulator {
		cpu.C = cpu.A&0x01 != 0
		cpu.A >>= 1
		setZN(cpu, cpu.A)
		return 0
	}
	value := cpu.Memory.Read(address)
	cpu.C = value&0x01 != 0
	value >>= 1
	cpu.Memory.Write(address, value)
	setZN(cpu, value)
	return 0
}

func opROL(cpu *CPU, address uint16, mode addressMode) int {
	var carryIn uint8
	if cpu.C {
		carryIn = 1
	}
	if mode == modeAccumulator {
		cpu.C = cpu.A&0x80 != 0
		cpu.A = (cpu.A << 1) | carryIn
		setZN(cpu, cpu.A)
		return 0
	}
	value := cpu.Memory.Read(address)
	newCarry := value&0x80 != 0
	value = (value << 1) | carryIn
	cpu.Memory.Write(address, value)
	cpu.C = newCarry
	setZN(cpu, value)
	return 0
}

func opROR(cpu *CPU, address uint16, mode addressMode) int {
	var carryIn uint8
	if cpu.C {
		carryIn = 0x80
	}
	if mode == modeAccumulator {
		newCarry := cpu.A&0x01 != 0
		cpu.A = (cpu.A >> 1) | carryIn
		cpu.C = newCarry
		setZN(cpu, cpu.A)
		return 0
	}
	value := cpu.Memory.Read(address)
	newCarry := value&0x01 != 0
	value = (value >> 1) | carryIn
	cpu.Memory.Write(address, value)
	cpu.C = newCarry
	setZN(cpu, value)
	return 0
}

func opCMP(cpu *CPU, address uint16, mode addressMode) int {
	cpu.compare(cpu.A, cpu.Memory.Read(address))
	return 0
}

func opCPX(cpu *CPU, address uint16, mode addressMode) int {
	cpu.compare(cpu.X, cpu.Memory.Read(address))
	return 0
}

func opCPY(cpu *CPU, address uint16, mode addressMode) int {
	cpu.compare(cpu.Y, cpu.Memory.Read(address))
	return 0
}

func opINC(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address) + 1
	cpu.Memory.Write(address, value)
	setZN(cpu, value)
	return 0
}

func opDEC(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address) - 1
	cpu.Memory.Write(address, value)
	setZN(cpu, value)
	return 0
}

func opINX(cpu *CPU, address uint16, mode addressMode) int { cpu.X++; setZN(cpu, cpu.X); return 0 }
func opDEX(cpu *CPU, address uint16, mode addressMode) int { cpu.X--; setZN(cpu, cpu.X); return 0 }
func opINY(cpu *CPU, address uint16, mode addressMode) int { cpu.Y++; setZN(cpu, cpu.Y); return 0 }
func opDEY(cpu *CPU, address uint16, mode addressMode) int { cpu.Y--; setZN(cpu, cpu.Y); return 0 }

func opTAX(cpu *CPU, address uint16, mode addressMode) int { cpu.X = cpu.A; setZN(cpu, cpu.X); return 0 }
func opTXA(cpu *CPU, address uint16, mode addressMode) int { cpu.A = cpu.X; setZN(cpu, cpu.A); return 0 }
func opTAY(cpu *CPU, address uint16, mode addressMode) int { cpu.Y = cpu.A; setZN(cpu, cpu.Y); return 0 }
func opTYA(cpu *CPU, address uint16, mode addressMode) int { cpu.A = cpu.Y; setZN(cpu, cpu.A); return 0 }
func opTSX(cpu *CPU, address uint16, mode addressMode) int { cpu.X = cpu.SP; setZN(cpu, cpu.X); return 0 }
func opTXS(cpu *CPU, address uint16, mode addressMode) int { cpu.SP = cpu.X; return 0 }

func opPHA(cpu *CPU, address uint16, mode addressMode) int { cpu.push8(cpu.A); return 0 }
func opPLA(cpu *CPU, address uint16, mode addressMode) int {
	cpu.A = cpu.pop8()
	setZN(cpu, cpu.A)
	return 0
}
func opPHP(cpu *CPU, address uint16, mode addressMode) int { cpu.push8(cpu.statusByte(true)); return 0 }
func opPLP(cpu *CPU, address uint16, mode addressMode) int { cpu.setStatusByte(cpu.pop8()); return 0 }

func opCLC(cpu *CPU, address uint16, mode addressMode) int { cpu.C = false; return 0 }
func opSEC(cpu *CPU, address uint16, mode addressMode) int { cpu.C = true; return 0 }
func opCLI(cpu *CPU, address uint16, mode addressMode) int { cpu.I = false; return 0 }
func opSEI(cpu *CPU, address uint16, mode addressMode) int { cpu.I = true; return 0 }
func opCLV(cpu *CPU, address uint16, mode addressMode) int { cpu.V = false; return 0 }
func opCLD(cpu *CPU, address uint16, mode addressMode) int { cpu.D = false; return 0 }
func opSED(cpu *CPU, address uint16, mode addressMode) int { cpu.D = true; return 0 }

func opJMP(cpu *CPU, address uint16, mode addressMode) int { cpu.PC = address; return 0 }

func opJSR(cpu *CPU, address uint16, mode addressMode) int {
	cpu.push16(cpu.PC - 1)
	cpu.PC = address
	return 0
}

func opRTS(cpu *CPU, address uint16, mode addressMode) int {
	cpu.PC = cpu.pop16() + 1
	return 0
}

func opRTI(cpu *CPU, address uint16, mode addressMode) int {
	cpu.setStatusByte(cpu.pop8())
	cpu.PC = cpu.pop16()
	return 0
}

func opBCC(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, !cpu.C) }
func opBCS(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, cpu.C) }
func opBNE(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, !cpu.Z) }
func opBEQ(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, cpu.Z) }
func opBPL(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, !cpu.N) }
func opBMI(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, cpu.N) }
func opBVC(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, !cpu.V) }
func opBVS(cpu *CPU, address uint16, mode addressMode) int { return cpu.branch(address, cpu.V) }

func opBIT(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address)
	cpu.Z = cpu.A&value == 0
	cpu.V = value&0x40 != 0
	cpu.N = value&0x80 != 0
	return 0
}

func opNOP(cpu *CPU, address uint16, mode addressMode) int {
	if mode != modeImplied {
		cpu.Memory.Read(address) // unofficial NOPs still perform the read
	}
	return 0
}

func opBRK(cpu *CPU, address uint16, mode addressMode) int {
	cpu.PC++ // BRK's padding byte
	cpu.push16(cpu.PC)
	cpu.push8(cpu.statusByte(true))
	cpu.I = true
	lo := uint16(cpu.Memory.Read(0xFFFE))
	hi := uint16(cpu.Memory.Read(0xFFFF))
	cpu.PC = (hi << 8) | lo
	return 0
}

// Unofficial opcodes, grounded on the common combined-instruction set
// (LAX/SAX/DCP/ISB/SLO/RLA/SRE/RRA) exercised by nestest and other
// compatibility test ROMs.

func opLAX(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address)
	cpu.A = value
	cpu.X = value
	setZN(cpu, value)
	return 0
}

func opSAX(cpu *CPU, address uint16, mode addressMode) int {
	cpu.Memory.Write(address, cpu.A&cpu.X)
	return 0
}

func opDCP(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address) - 1
	cpu.Memory.Write(address, value)
	cpu.compare(cpu.A, value)
	return 0
}

func opISB(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address) + 1
	cpu.Memory.Write(address, value)
	cpu.addWithCarry(^value)
	return 0
}

func opSLO(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address)
	cpu.C = value&0x80 != 0
	value <<= 1
	cpu.Memory.Write(address, value)
	cpu.A |= value
	setZN(cpu, cpu.A)
	return 0
}

func opRLA(cpu *CPU, address uint16, mode addressMode) int {
	var carryIn uint8
	if cpu.C {
		carryIn = 1
	}
	value := cpu.Memory.Read(address)
	newCarry := value&0x80 != 0
	value = (value << 1) | carryIn
	cpu.Memory.Write(address, value)
	cpu.C = newCarry
	cpu.A &= value
	setZN(cpu, cpu.A)
	return 0
}

func opSRE(cpu *CPU, address uint16, mode addressMode) int {
	value := cpu.Memory.Read(address)
	cpu.C = value&0x01 != 0
	value >>= 1
	cpu.Memory.Write(address, value)
	cpu.A ^= value
	setZN(cpu, cpu.A)
	return 0
}

func opRRA(cpu *CPU, address uint16, mode addressMode) int {
	var carryIn uint8
	if cpu.C {
		carryIn = 0x80
	}
	value := cpu.Memory.Read(address)
	newCarry := value&0x01 != 0
	value = (value >> 1) | carryIn
	cpu.Memory.Write(address, value)
	cpu.C = newCarry
	cpu.addWithCarry(value)
	return 0
}

// initInstructions populates the 256-entry opcode table with every
// official opcode and the LAX/SAX/DCP/ISB/SLO/RLA/SRE/RRA and NOP
// unofficial families, with byte length and base cycle cost per the 6502
// reference (https://www.nesdev.org/obelisk-6502-guide/reference.html).
// The remaining slots stay nil; Step runs those as one-byte, two-cycle NOPs.
func (cpu *CPU) initInstructions() {
	set := func(op uint8, name string, mode addressMode, bytes, cycles int, fn func(*CPU, uint16, addressMode) int) {
		cpu.instructions[op] = &Instruction{Name: name, Mode: mode, Bytes: bytes, Cycles: cycles, Execute: fn}
	}

	set(0xA9, "LDA", modeImmediate, 2, 2, opLDA)
	set(0xA5, "LDA", modeZeroPage, 2, 3, opLDA)
	set(0xB5, "LDA", modeZeroPageX, 2, 4, opLDA)
	set(0xAD, "LDA", modeAbsolute, 3, 4, opLDA)
	set(0xBD, "LDA", modeAbsoluteX, 3, 4, opLDA)
	set(0xB9, "LDA", modeAbsoluteY, 3, 4, opLDA)
	set(0xA1, "LDA", modeIndirectX, 2, 6, opLDA)
	set(0xB1, "LDA", modeIndirectY, 2, 5, opLDA)

	set(0xA2, "LDX", modeImmediate, 2, 2, opLDX)
	set(0xA6, "LDX", modeZeroPage, 2, 3, opLDX)
	set(0xB6, "LDX", modeZeroPageY, 2, 4, opLDX)
	set(0xAE, "LDX", modeAbsolute, 3, 4, opLDX)
	set(0xBE, "LDX", modeAbsoluteY, 3, 4, opLDX)

	set(0xA0, "LDY", modeImmediate, 2, 2, opLDY)
	set(0xA4, "LDY", modeZeroPage, 2, 3, opLDY)
	set(0xB4, "LDY", modeZeroPageX, 2, 4, opLDY)
	set(0xAC, "LDY", modeAbsolute, 3, 4, opLDY)
	set(0xBC, "LDY", modeAbsoluteX, 3, 4, opLDY)

	set(0x85, "STA", modeZeroPage, 2, 3, opSTA)
	set(0x95, "STA", modeZeroPageX, 2, 4, opSTA)
	set(0x8D, "STA", modeAbsolute, 3, 4, opSTA)
	set(0x9D, "STA", modeAbsoluteX, 3, 5, opSTA)
	set(0x99, "STA", modeAbsoluteY, 3, 5, opSTA)
	set(0x81, "STA", modeIndirectX, 2, 6, opSTA)
	set(0x91, "STA", modeIndirectY, 2, 6, opSTA)

	set(0x86, "STX", modeZeroPage, 2, 3, opSTX)
	set(0x96, "STX", modeZeroPageY, 2, 4, opSTX)
	set(0x8E, "STX", modeAbsolute, 3, 4, opSTX)

	set(0x84, "STY", modeZeroPage, 2, 3, opSTY)
	set(0x94, "STY", modeZeroPageX, 2, 4, opSTY)
	set(0x8C, "STY", modeAbsolute, 3, 4, opSTY)

	set(0x69, "ADC", modeImmediate, 2, 2, opADC)
	set(0x65, "ADC", modeZeroPage, 2, 3, opADC)
	set(0x75, "ADC", modeZeroPageX, 2, 4, opADC)
	set(0x6D, "ADC", modeAbsolute, 3, 4, opADC)
	set(0x7D, "ADC", modeAbsoluteX, 3, 4, opADC)
	set(0x79, "ADC", modeAbsoluteY, 3, 4, opADC)
	set(0x61, "ADC", modeIndirectX, 2, 6, opADC)
	set(0x71, "ADC", modeIndirectY, 2, 5, opADC)

	set(0xE9, "SBC", modeImmediate, 2, 2, opSBC)
	set(0xE5, "SBC", modeZeroPage, 2, 3, opSBC)
	set(0xF5, "SBC", modeZeroPageX, 2, 4, opSBC)
	set(0xED, "SBC", modeAbsolute, 3, 4, opSBC)
	set(0xFD, "SBC", modeAbsoluteX, 3, 4, opSBC)
	set(0xF9, "SBC", modeAbsoluteY, 3, 4, opSBC)
	set(0xE1, "SBC", modeIndirectX, 2, 6, opSBC)
	set(0xF1, "SBC", modeIndirectY, 2, 5, opSBC)
	set(0xEB, "SBC", modeImmediate, 2, 2, opSBC) // unofficial duplicate

	set(0x29, "AND", modeImmediate, 2, 2, opAND)
	set(0x25, "AND", modeZeroPage, 2, 3, opAND)
	set(0x35, "AND", modeZeroPageX, 2, 4, opAND)
	set(0x2D, "AND", modeAbsolute, 3, 4, opAND)
	set(0x3D, "AND", modeAbsoluteX, 3, 4, opAND)
	set(0x39, "AND", modeAbsoluteY, 3, 4, opAND)
	set(0x21, "AND", modeIndirectX, 2, 6, opAND)
	set(0x31, "AND", modeIndirectY, 2, 5, opAND)

	set(0x09, "ORA", modeImmediate, 2, 2, opORA)
	set(0x05, "ORA", modeZeroPage, 2, 3, opORA)
	set(0x15, "ORA", modeZeroPageX, 2, 4, opORA)
	set(0x0D, "ORA", modeAbsolute, 3, 4, opORA)
	set(0x1D, "ORA", modeAbsoluteX, 3, 4, opORA)
	set(0x19, "ORA", modeAbsoluteY, 3, 4, opORA)
	set(0x01, "ORA", modeIndirectX, 2, 6, opORA)
	set(0x11, "ORA", modeIndirectY, 2, 5, opORA)

	set(0x49, "EOR", modeImmediate, 2, 2, opEOR)
	set(0x45, "EOR", modeZeroPage, 2, 3, opEOR)
	set(0x55, "EOR", modeZeroPageX, 2, 4, opEOR)
	set(0x4D, "EOR", modeAbsolute, 3, 4, opEOR)
	set(0x5D, "EOR", modeAbsoluteX, 3, 4, opEOR)
	set(0x59, "EOR", modeAbsoluteY, 3, 4, opEOR)
	set(0x41, "EOR", modeIndirectX, 2, 6, opEOR)
	set(0x51, "EOR", modeIndirectY, 2, 5, opEOR)

	set(0x0A, "ASL", modeAccumulator, 1, 2, opASL)
	set(0x06, "ASL", modeZeroPage, 2, 5, opASL)
	set(0x16, "ASL", modeZeroPageX, 2, 6, opASL)
	set(0x0E, "ASL", modeAbsolute, 3, 6, opASL)
	set(0x1E, "ASL", modeAbsoluteX, 3, 7, opASL)

	set(0x4A, "LSR", modeAccumulator, 1, 2, opLSR)
	set(0x46, "LSR", modeZeroPage, 2, 5, opLSR)
	set(0x56, "LSR", modeZeroPageX, 2, 6, opLSR)
	set(0x4E, "LSR", modeAbsolute, 3, 6, opLSR)
	set(0x5E, "LSR", modeAbsoluteX, 3, 7, opLSR)

	set(0x2A, "ROL", modeAccumulator, 1, 2, opROL)
	set(0x26, "ROL", modeZeroPage, 2, 5, opROL)
	set(0x36, "ROL", modeZeroPageX, 2, 6, opROL)
	set(0x2E, "ROL", modeAbsolute, 3, 6, opROL)
	set(0x3E, "ROL", modeAbsoluteX, 3, 7, opROL)

	set(0x6A, "ROR", modeAccumulator, 1, 2, opROR)
	set(0x66, "ROR", modeZeroPage, 2, 5, opROR)
	set(0x76, "ROR", modeZeroPageX, 2, 6, opROR)
	set(0x6E, "ROR", modeAbsolute, 3, 6, opROR)
	set(0x7E, "ROR", modeAbsoluteX, 3, 7, opROR)

	set(0xC9, "CMP", modeImmediate, 2, 2, opCMP)
	set(0xC5, "CMP", modeZeroPage, 2, 3, opCMP)
	set(0xD5, "CMP", modeZeroPageX, 2, 4, opCMP)
	set(0xCD, "CMP", modeAbsolute, 3, 4, opCMP)
	set(0xDD, "CMP", modeAbsoluteX, 3, 4, opCMP)
	set(0xD9, "CMP", modeAbsoluteY, 3, 4, opCMP)
	set(0xC1, "CMP", modeIndirectX, 2, 6, opCMP)
	set(0xD1, "CMP", modeIndirectY, 2, 5, opCMP)

	set(0xE0, "CPX", modeImmediate, 2, 2, opCPX)
	set(0xE4, "CPX", modeZeroPage, 2, 3, opCPX)
	set(0xEC, "CPX", modeAbsolute, 3, 4, opCPX)

	set(0xC0, "CPY", modeImmediate, 2, 2, opCPY)
	set(0xC4, "CPY", modeZeroPage, 2, 3, opCPY)
	set(0xCC, "CPY", modeAbsolute, 3, 4, opCPY)

	set(0xE6, "INC", modeZeroPage, 2, 5, opINC)
	set(0xF6, "INC", modeZeroPageX, 2, 6, opINC)
	set(0xEE, "INC", modeAbsolute, 3, 6, opINC)
	set(0xFE, "INC", modeAbsoluteX, 3, 7, opINC)

	set(0xC6, "DEC", modeZeroPage, 2, 5, opDEC)
	set(0xD6, "DEC", modeZeroPageX, 2, 6, opDEC)
	set(0xCE, "DEC", modeAbsolute, 3, 6, opDEC)
	set(0xDE, "DEC", modeAbsoluteX, 3, 7, opDEC)

	set(0xE8, "INX", modeImplied, 1, 2, opINX)
	set(0xCA, "DEX", modeImplied, 1, 2, opDEX)
	set(0xC8, "INY", modeImplied, 1, 2, opINY)
	set(0x88, "DEY", modeImplied, 1, 2, opDEY)

	set(0xAA, "TAX", modeImplied, 1, 2, opTAX)
	set(0x8A, "TXA", modeImplied, 1, 2, opTXA)
	set(0xA8, "TAY", modeImplied, 1, 2, opTAY)
	set(0x98, "TYA", modeImplied, 1, 2, opTYA)
	set(0xBA, "TSX", modeImplied, 1, 2, opTSX)
	set(0x9A, "TXS", modeImplied, 1, 2, opTXS)

	set(0x48, "PHA", modeImplied, 1, 3, opPHA)
	set(0x68, "PLA", modeImplied, 1, 4, opPLA)
	set(0x08, "PHP", modeImplied, 1, 3, opPHP)
	set(0x28, "PLP", modeImplied, 1, 4, opPLP)

	set(0x18, "CLC", modeImplied, 1, 2, opCLC)
	set(0x38, "SEC", modeImplied, 1, 2, opSEC)
	set(0x58, "CLI", modeImplied, 1, 2, opCLI)
	set(0x78, "SEI", modeImplied, 1, 2, opSEI)
	set(0xB8, "CLV", modeImplied, 1, 2, opCLV)
	set(0xD8, "CLD", modeImplied, 1, 2, opCLD)
	set(0xF8, "SED", modeImplied, 1, 2, opSED)

	set(0x4C, "JMP", modeAbsolute, 3, 3, opJMP)
	set(0x6C, "JMP", modeIndirect, 3, 5, opJMP)
	set(0x20, "JSR", modeAbsolute, 3, 6, opJSR)
	set(0x60, "RTS", modeImplied, 1, 6, opRTS)
	set(0x40, "RTI", modeImplied, 1, 6, opRTI)

	set(0x90, "BCC", modeRelative, 2, 2, opBCC)
	set(0xB0, "BCS", modeRelative, 2, 2, opBCS)
	set(0xD0, "BNE", modeRelative, 2, 2, opBNE)
	set(0xF0, "BEQ", modeRelative, 2, 2, opBEQ)
	set(0x10, "BPL", modeRelative, 2, 2, opBPL)
	set(0x30, "BMI", modeRelative, 2, 2, opBMI)
	set(0x50, "BVC", modeRelative, 2, 2, opBVC)
	set(0x70, "BVS", modeRelative, 2, 2, opBVS)

	set(0x24, "BIT", modeZeroPage, 2, 3, opBIT)
	set(0x2C, "BIT", modeAbsolute, 3, 4, opBIT)

	set(0x00, "BRK", modeImplied, 1, 7, opBRK)

	// Official and unofficial NOPs.
	set(0xEA, "NOP", modeImplied, 1, 2, opNOP)
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "NOP", modeImplied, 1, 2, opNOP)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "NOP", modeImmediate, 2, 2, opNOP)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, "NOP", modeZeroPage, 2, 3, opNOP)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "NOP", modeZeroPageX, 2, 4, opNOP)
	}
	set(0x0C, "NOP", modeAbsolute, 3, 4, opNOP)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "NOP", modeAbsoluteX, 3, 4, opNOP)
	}

	set(0xA7, "LAX", modeZeroPage, 2, 3, opLAX)
	set(0xB7, "LAX", modeZeroPageY, 2, 4, opLAX)
	set(0xAF, "LAX", modeAbsolute, 3, 4, opLAX)
	set(0xBF, "LAX", modeAbsoluteY, 3, 4, opLAX)
	set(0xA3, "LAX", modeIndirectX, 2, 6, opLAX)
	set(0xB3, "LAX", modeIndirectY, 2, 5, opLAX)

	set(0x87, "SAX", modeZeroPage, 2, 3, opSAX)
	set(0x97, "SAX", modeZeroPageY, 2, 4, opSAX)
	set(0x8F, "SAX", modeAbsolute, 3, 4, opSAX)
	set(0x83, "SAX", modeIndirectX, 2, 6, opSAX)

	set(0xC7, "DCP", modeZeroPage, 2, 5, opDCP)
	set(0xD7, "DCP", modeZeroPageX, 2, 6, opDCP)
	set(0xCF, "DCP", modeAbsolute, 3, 6, opDCP)
	set(0xDF, "DCP", modeAbsoluteX, 3, 7, opDCP)
	set(0xDB, "DCP", modeAbsoluteY, 3, 7, opDCP)
	set(0xC3, "DCP", modeIndirectX, 2, 8, opDCP)
	set(0xD3, "DCP", modeIndirectY, 2, 8, opDCP)

	set(0xE7, "ISB", modeZeroPage, 2, 5, opISB)
	set(0xF7, "ISB", modeZeroPageX, 2, 6, opISB)
	set(0xEF, "ISB", modeAbsolute, 3, 6, opISB)
	set(0xFF, "ISB", modeAbsoluteX, 3, 7, opISB)
	set(0xFB, "ISB", modeAbsoluteY, 3, 7, opISB)
	set(0xE3, "ISB", modeIndirectX, 2, 8, opISB)
	set(0xF3, "ISB", modeIndirectY, 2, 8, opISB)

	set(0x07, "SLO", modeZeroPage, 2, 5, opSLO)
	set(0x17, "SLO", modeZeroPageX, 2, 6, opSLO)
	set(0x0F, "SLO", modeAbsolute, 3, 6, opSLO)
	set(0x1F, "SLO", modeAbsoluteX, 3, 7, opSLO)
	set(0x1B, "SLO", modeAbsoluteY, 3, 7, opSLO)
	set(0x03, "SLO", modeIndirectX, 2, 8, opSLO)
	set(0x13, "SLO", modeIndirectY, 2, 8, opSLO)

	set(0x27, "RLA", modeZeroPage, 2, 5, opRLA)
	set(0x37, "RLA", modeZeroPageX, 2, 6, opRLA)
	set(0x2F, "RLA", modeAbsolute, 3, 6, opRLA)
	set(0x3F, "RLA", modeAbsoluteX, 3, 7, opRLA)
	set(0x3B, "RLA", modeAbsoluteY, 3, 7, opRLA)
	set(0x23, "RLA", modeIndirectX, 2, 8, opRLA)
	set(0x33, "RLA", modeIndirectY, 2, 8, opRLA)

	set(0x47, "SRE", modeZeroPage, 2, 5, opSRE)
	set(0x57, "SRE", modeZeroPageX, 2, 6, opSRE)
	set(0x4F, "SRE", modeAbsolute, 3, 6, opSRE)
	set(0x5F, "SRE", modeAbsoluteX, 3, 7, opSRE)
	set(0x5B, "SRE", modeAbsoluteY, 3, 7, opSRE)
	set(0x43, "SRE", modeIndirectX, 2, 8, opSRE)
	set(0x53, "SRE", modeIndirectY, 2, 8, opSRE)

	set(0x67, "RRA", modeZeroPage, 2, 5, opRRA)
	set(0x77, "RRA", modeZeroPageX, 2, 6, opRRA)
	set(0x6F, "RRA", modeAbsolute, 3, 6, opRRA)
	set(0x7F, "RRA", modeAbsoluteX, 3, 7, opRRA)
	set(0x7B, "RRA", modeAbsoluteY, 3, 7, opRRA)
	set(0x63, "RRA", modeIndirectX, 2, 8, opRRA)
	set(0x73, "RRA", modeIndirectY, 2, 8, opRRA)
}

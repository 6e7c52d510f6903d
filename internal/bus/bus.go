// Package bus wires the CPU, PPU, APU, input, and cartridge together and
// drives the master clock: the PPU runs at exactly 3x the CPU's rate,
// and OAM DMA suspends CPU execution for the documented 513/514 cycles.
package bus

import (
	"nesgo/internal/apu"
	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
	"nesgo/internal/input"
	"nesgo/internal/memory"
	"nesgo/internal/ppu"
)

// cpuCyclesPerFrame is the NTSC CPU-cycle length of one 262-scanline,
// 341-dot frame: 89342 PPU cycles / 3.
const cpuCyclesPerFrame = 29781

// Bus connects the CPU, PPU, APU, input, and cartridge, and owns the
// cycle-accurate stepping that keeps them all in lockstep.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	cpuCycles  uint64
	ppuCycles  uint64
	frameCount uint64

	dmaSuspendCycles uint64
	dmaInProgress    bool
	dmaSourcePage    uint8
	dmaStartOAMAddr  uint8
	dmaBytesCopied   int
	nmiPending       bool

	frameCallback func([256 * 240]uint32)
}

// New creates a fully wired Bus with no cartridge loaded. Call
// LoadCartridge before stepping.
func New() *Bus {
	bus := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}

	bus.Memory = memory.New(bus.PPU, bus.APU, nil)
	bus.Memory.SetInputSystem(bus.Input)
	bus.CPU = cpu.New(bus.Memory)

	bus.PPU.SetNMICallback(bus.triggerNMI)
	bus.PPU.SetFrameCompleteCallback(bus.handleFrameComplete)
	bus.Memory.SetDMACallback(bus.TriggerOAMDMA)

	bus.Reset()
	return bus
}

// NewFlat creates a Bus whose CPU reads and writes through a flat 64KiB
// array instead of the normal PPU/APU/cartridge-routed address map. The
// PPU and APU are still present and still ticked by Step so frame/cycle
// counting behaves normally, but nothing the CPU does is visible to them.
// This is for CPU unit testing against functional test ROMs (e.g. nestest
// in automated mode) that assume a uniform, unmirrored address space.
func NewFlat() (*Bus, *memory.FlatMemory) {
	bus := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}

	flat := memory.NewFlat()
	bus.CPU = cpu.New(flat)
	bus.Reset()
	return bus, flat
}

// Reset restores every component to its power-on/reset state.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()

	b.cpuCycles = 0
	b.ppuCycles = 0
	b.frameCount = 0
	b.dmaSuspendCycles = 0
	b.dmaInProgress = false
	b.nmiPending = false
}

// SetFrameCallback installs a function invoked with a copy of the frame
// buffer each time the PPU completes a frame.
func (b *Bus) SetFrameCallback(callback func([256 * 240]uint32)) {
	b.frameCallback = callback
}

// triggerNMI is the PPU's NMI-output-edge callback.
func (b *Bus) triggerNMI() {
	b.nmiPending = true
}

// handleFrameComplete is the PPU's end-of-frame callback.
func (b *Bus) handleFrameComplete() {
	b.frameCount = b.PPU.GetFrameCount()
	if b.frameCallback != nil {
		b.frameCallback(b.PPU.GetFrameBuffer())
	}
}

// Step advances the system by one CPU instruction (or, while an OAM DMA
// transfer is suspending the CPU, by one stalled cycle), then advances
// the PPU by exactly 3x and the APU by exactly 1x the CPU cycles spent.
// CPU.Step already folds interrupt-dispatch cycles into its return
// value, so this 3:1 ratio holds across NMI/IRQ boundaries too.
func (b *Bus) Step() uint64 {
	var cpuCycles uint64

	if b.dmaSuspendCycles > 0 {
		cpuCycles = 1
		b.stepOAMDMAByte()
		b.dmaSuspendCycles--
		if b.dmaSuspendCycles == 0 {
			b.dmaInProgress = false
		}
	} else {
		if b.nmiPending {
			b.nmiPending = false
			b.CPU.SetNMI()
		}
		cpuCycles = uint64(b.CPU.Step())
	}

	for i := uint64(0); i < cpuCycles*3; i++ {
		b.PPU.Step()
		b.ppuCycles++
	}
	for i := uint64(0); i < cpuCycles; i++ {
		b.APU.Step()
	}
	b.CPU.SetIRQLine(b.APU.IRQLine())

	b.cpuCycles += cpuCycles
	return cpuCycles
}

// TriggerOAMDMA begins a 256-byte OAM DMA from CPU page sourcePage into
// OAM starting at the current OAMADDR. The transfer takes 513 cycles (514
// if it starts on an odd CPU cycle) and suspends CPU execution for that
// duration; bytes are copied one per stalled cycle pair via
// stepOAMDMAByte rather than all at once, so a cartridge that changes
// bank-switch state mid-transfer is observed correctly mid-copy.
func (b *Bus) TriggerOAMDMA(sourcePage uint8) {
	if b.dmaInProgress {
		return
	}
	dmaCycles := uint64(513)
	if b.cpuCycles%2 == 1 {
		dmaCycles = 514
	}
	b.dmaInProgress = true
	b.dmaSuspendCycles = dmaCycles
	b.dmaSourcePage = sourcePage
	b.dmaStartOAMAddr = b.PPU.OAMAddr()
	b.dmaBytesCopied = 0
}

// stepOAMDMAByte copies one byte per two stalled cycles once the initial
// alignment cycle(s) have elapsed, matching the real DMA unit's
// read-then-write cadence.
func (b *Bus) stepOAMDMAByte() {
	elapsed := int(b.dmaSuspendCycles)
	// The alignment/dummy cycle(s) are the leading 1 or 2 cycles; actual
	// byte transfers occupy the remaining 512 cycles, two per byte.
	align := 513 - elapsed
	if align < 1 {
		return
	}
	transferCycle := 512 - elapsed
	if transferCycle < 0 {
		return
	}
	if transferCycle%2 == 1 && b.dmaBytesCopied < 256 {
		addr := uint16(b.dmaSourcePage)<<8 + uint16(b.dmaBytesCopied)
		oamAddr := b.dmaStartOAMAddr + uint8(b.dmaBytesCopied)
		b.PPU.WriteOAM(oamAddr, b.Memory.Read(addr))
		b.dmaBytesCopied++
	}
}

// LoadCartridge installs cart, rebuilding the CPU's and PPU's memory maps
// and resetting the CPU from the new cartridge's reset vector.
func (b *Bus) LoadCartridge(cart memory.CartridgeInterface) {
	b.Memory = memory.New(b.PPU, b.APU, cart)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	mirrorMode := memory.MirrorHorizontal
	if c, ok := cart.(*cartridge.Cartridge); ok {
		mirrorMode = c.Mirror()
	}

	b.PPU.SetMemory(memory.NewPPUMemory(cart, mirrorMode))
	b.Memory.SetDMACallback(b.TriggerOAMDMA)

	b.CPU.Reset()
}

// Run steps the system until frames more frames have completed.
func (b *Bus) Run(frames int) {
	target := b.frameCount + uint64(frames)
	for b.frameCount < target {
		b.Step()
	}
}

// RunCycles steps the system until cycles more CPU cycles have elapsed.
func (b *Bus) RunCycles(cycles uint64) {
	target := b.cpuCycles + cycles
	for b.cpuCycles < target {
		b.Step()
	}
}

// Frame steps the system through one NTSC frame's worth of CPU cycles.
func (b *Bus) Frame() {
	target := b.cpuCycles + cpuCyclesPerFrame
	for b.cpuCycles < target {
		b.Step()
	}
}

// GetFrameBuffer returns the PPU's current frame buffer as a flat slice.
func (b *Bus) GetFrameBuffer() []uint32 {
	fb := b.PPU.GetFrameBuffer()
	return fb[:]
}

// GetAudioSamples returns the APU's pending sample buffer (always empty;
// audio synthesis is out of scope).
func (b *Bus) GetAudioSamples() []float32 {
	return b.APU.GetSamples()
}

// SetAudioSampleRate is forwarded to the APU stub for interface parity
// with a synthesizing APU.
func (b *Bus) SetAudioSampleRate(rate int) {
	b.APU.SetSampleRate(rate)
}

// GetCycleCount returns the total CPU cycles elapsed since Reset.
func (b *Bus) GetCycleCount() uint64 {
	return b.cpuCycles
}

// GetFrameCount returns the number of frames completed since Reset.
func (b *Bus) GetFrameCount() uint64 {
	return b.frameCount
}

// CyclesPerFrame returns the NTSC CPU-cycle length of one frame, so callers
// driving their own frame-stepped loop don't have to hardcode it.
func (b *Bus) CyclesPerFrame() uint64 {
	return cpuCyclesPerFrame
}

// IsDMAInProgress reports whether an OAM DMA transfer is currently
// suspending the CPU.
func (b *Bus) IsDMAInProgress() bool {
	return b.dmaInProgress
}

// SetControllerButton sets one button on the given controller (1 or 2).
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons sets all eight buttons on the given controller at
// once, in A/B/Select/Start/Up/Down/Left/Right order.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 1:
		b.Input.SetButtons1(buttons)
	case 2:
		b.Input.SetButtons2(buttons)
	}
}

// GetInputState returns the bus's input state for direct access.
func (b *Bus) GetInputState() *input.InputState {
	return b.Input
}

// CPUState is a snapshot of CPU registers and flags, used by tests and
// debug tooling.
type CPUState struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
	Cycles  uint64
	Flags   CPUFlags
}

// CPUFlags is a snapshot of the CPU's processor-status flags.
type CPUFlags struct {
	N, V, B, D, I, Z, C bool
}

// GetCPUState returns a snapshot of the current CPU state.
func (b *Bus) GetCPUState() CPUState {
	return CPUState{
		PC:     b.CPU.PC,
		A:      b.CPU.A,
		X:      b.CPU.X,
		Y:      b.CPU.Y,
		SP:     b.CPU.SP,
		Cycles: b.cpuCycles,
		Flags: CPUFlags{
			N: b.CPU.N,
			V: b.CPU.V,
			B: b.CPU.B,
			D: b.CPU.D,
			I: b.CPU.I,
			Z: b.CPU.Z,
			C: b.CPU.C,
		},
	}
}

// PPUState is a snapshot of PPU timing and status, used by tests and
// debug tooling.
type PPUState struct {
	Scanline    int
	Cycle       int
	FrameCount  uint64
	VBlankFlag  bool
	RenderingOn bool
}

// GetPPUState returns a snapshot of the current PPU state.
func (b *Bus) GetPPUState() PPUState {
	return PPUState{
		Scanline:    b.PPU.GetScanline(),
		Cycle:       b.PPU.GetCycle(),
		FrameCount:  b.frameCount,
		VBlankFlag:  b.PPU.IsVBlank(),
		RenderingOn: b.PPU.IsRenderingEnabled(),
	}
}

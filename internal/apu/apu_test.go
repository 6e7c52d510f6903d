package apu

import "testing"

func TestWriteStatusTracksLengthCounterEnables(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x05) // enable pulse1 and triangle

	status := a.ReadStatus()
	if status&0x01 == 0 {
		t.Fatal("pulse1 length-counter-active bit should be set")
	}
	if status&0x02 != 0 {
		t.Fatal("pulse2 length-counter-active bit should be clear")
	}
	if status&0x04 == 0 {
		t.Fatal("triangle length-counter-active bit should be set")
	}
}

func TestWriteStatusClearsDMCIRQFlag(t *testing.T) {
	a := New()
	a.dmcIRQFlag = true
	a.WriteRegister(0x4015, 0x00)

	if a.ReadStatus()&0x80 != 0 {
		t.Fatal("writing $4015 should clear the DMC IRQ flag")
	}
}

func TestFrameSequencerFourStepModeRaisesIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00) // 4-step mode, IRQ enabled

	for i := 0; i < frameCounterCPUCycles; i++ {
		a.Step()
	}

	if !a.IRQLine() {
		t.Fatal("expected frame IRQ line asserted after one 4-step period")
	}
}

func TestFrameSequencerFiveStepModeNeverRaisesIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x80) // 5-step mode

	for i := 0; i < frameCounterCPUCycles*2; i++ {
		a.Step()
	}

	if a.IRQLine() {
		t.Fatal("5-step mode should never assert the frame IRQ")
	}
}

func TestFrameIRQInhibitBitSuppressesAndClearsIRQ(t *testing.T) {
	a := New()
	a.frameIRQFlag = true
	a.WriteRegister(0x4017, 0x40) // IRQ inhibit set

	if a.IRQLine() {
		t.Fatal("setting the IRQ-inhibit bit should immediately clear a pending frame IRQ")
	}

	for i := 0; i < frameCounterCPUCycles; i++ {
		a.Step()
	}
	if a.IRQLine() {
		t.Fatal("frame IRQ should not assert again while inhibited")
	}
}

func TestReadStatusClearsFrameIRQFlagAsSideEffect(t *testing.T) {
	a := New()
	a.frameIRQFlag = true

	first := a.ReadStatus()
	if first&0x40 == 0 {
		t.Fatal("first read should report the frame IRQ flag set")
	}
	second := a.ReadStatus()
	if second&0x40 != 0 {
		t.Fatal("reading $4015 should clear the frame IRQ flag")
	}
}

func TestResetClearsRegisterBankAndFlags(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0xFF)
	a.WriteRegister(0x4015, 0x0F)
	a.Reset()

	if a.registers[0] != 0 {
		t.Fatal("Reset should clear the register bank")
	}
	if a.ReadStatus() != 0 {
		t.Fatal("Reset should clear length-counter-active and IRQ flags")
	}
}

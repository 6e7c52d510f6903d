package input

import "testing"

func TestControllerSerialShiftOrder(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, true, false, false, false, false, false}) // A, Select
	c.Write(1) // strobe high, latches
	c.Write(0) // strobe low, begin serial read

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestControllerPastEighthBitReturnsOne(t *testing.T) {
	c := New()
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	for i := 0; i < 3; i++ {
		if got := c.Read(); got != 1 {
			t.Fatalf("read past 8th bit = %d, want 1 (open bus high)", got)
		}
	}
}

func TestControllerStrobeHighContinuouslyReloads(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(1) // strobe held high

	if got := c.Read(); got != 1 {
		t.Fatalf("Read() = %d, want 1 (A pressed, strobe high always returns bit 0 of buttons)", got)
	}

	c.SetButton(ButtonA, false)
	if got := c.Read(); got != 0 {
		t.Fatalf("Read() = %d, want 0 (strobe still high, live button state no longer pressed)", got)
	}
}

func TestControllerIsPressedReflectsSetButton(t *testing.T) {
	c := New()
	c.SetButton(ButtonStart, true)
	if !c.IsPressed(ButtonStart) {
		t.Fatal("IsPressed(ButtonStart) should be true after SetButton(..., true)")
	}
	if c.IsPressed(ButtonA) {
		t.Fatal("IsPressed(ButtonA) should be false, it was never set")
	}
}

func TestInputStateController2OpenBusBit(t *testing.T) {
	is := NewInputState()
	is.Controller2.Write(1)
	is.Controller2.Write(0)

	got := is.Read(0x4017)
	if got&0x40 == 0 {
		t.Fatal("Read($4017) should always have bit 6 set (open-bus high)")
	}
}

func TestInputStateStrobeWiresBothControllers(t *testing.T) {
	is := NewInputState()
	is.SetButtons1([8]bool{true, false, false, false, false, false, false, false})
	is.SetButtons2([8]bool{false, true, false, false, false, false, false, false})

	is.Write(0x4016, 1)
	is.Write(0x4016, 0)

	if got := is.Read(0x4016); got != 1 {
		t.Fatalf("Read($4016) = %d, want 1 (controller 1's A button)", got)
	}
	is.Read(0x4017) // controller 2's A bit (not pressed)
	if got := is.Read(0x4017) & 1; got != 1 {
		t.Fatalf("Read($4017)&1 = %d, want 1 (controller 2's B button)", got)
	}
}

func TestInputStateReset(t *testing.T) {
	is := NewInputState()
	is.SetButtons1([8]bool{true, true, true, true, true, true, true, true})
	is.Reset()

	if is.Controller1.IsPressed(ButtonA) {
		t.Fatal("Reset should clear all button state")
	}
}

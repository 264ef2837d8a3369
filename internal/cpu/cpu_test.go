package cpu_test

import (
	"bytes"
	"testing"

	"nesgo/internal/bus"
	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
)

// newTestSystem builds a 32KB-PRG cartridge with prg copied to $8000 and the
// reset vector pointed at $8000, then wires a bus and CPU against it exactly
// the way internal/app's wiring layer does.
func newTestSystem(t *testing.T, prg []byte) (*cpu.CPU, *bus.Bus) {
	t.Helper()
	image := make([]byte, 32*1024)
	copy(image, prg)
	image[0x7FFC] = 0x00 // reset vector low -> $8000
	image[0x7FFD] = 0x80

	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(2) // 2 PRG pages, linear 32KB, no mirroring
	buf.WriteByte(1)
	buf.Write(make([]byte, 10))
	buf.Write(image)
	buf.Write(make([]byte, 8*1024))

	cart, err := cartridge.Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	b := bus.New(cart)
	c := cpu.New(b)
	c.Reset()
	return c, b
}

func TestResetVectorAndStackPointer(t *testing.T) {
	c, _ := newTestSystem(t, nil)
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want $8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x, want $FD", c.SP)
	}
	if !c.I {
		t.Fatalf("I flag should be set after reset")
	}
}

func TestLDAImmediateSetsZeroAndNegativeFlags(t *testing.T) {
	c, _ := newTestSystem(t, []byte{0xA9, 0x00}) // LDA #$00
	c.Step()
	if !c.Z || c.N {
		t.Fatalf("LDA #$00: Z=%v N=%v, want Z=true N=false", c.Z, c.N)
	}

	c, _ = newTestSystem(t, []byte{0xA9, 0x80}) // LDA #$80
	c.Step()
	if c.Z || !c.N {
		t.Fatalf("LDA #$80: Z=%v N=%v, want Z=false N=true", c.Z, c.N)
	}
}

func TestADCSignedOverflow(t *testing.T) {
	// LDA #$7F; ADC #$01 -> overflow from positive+positive=negative.
	c, _ := newTestSystem(t, []byte{0xA9, 0x7F, 0x69, 0x01})
	c.Step()
	c.Step()
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want $80", c.A)
	}
	if !c.V {
		t.Fatalf("V flag should be set on signed overflow")
	}
	if c.C {
		t.Fatalf("C flag should be clear, no unsigned carry out of $7F+$01")
	}
}

func TestSBCBorrow(t *testing.T) {
	// SEC; LDA #$00; SBC #$01 -> 0 - 1 with no incoming borrow underflows.
	c, _ := newTestSystem(t, []byte{0x38, 0xA9, 0x00, 0xE9, 0x01})
	c.Step()
	c.Step()
	c.Step()
	if c.A != 0xFF {
		t.Fatalf("A = %#02x, want $FF", c.A)
	}
	if c.C {
		t.Fatalf("C flag should be clear, signaling a borrow occurred")
	}
}

func TestCMPSetsCarryOnGreaterOrEqual(t *testing.T) {
	c, _ := newTestSystem(t, []byte{0xA9, 0x10, 0xC9, 0x05}) // LDA #$10; CMP #$05
	c.Step()
	c.Step()
	if !c.C {
		t.Fatalf("C flag should be set, A >= operand")
	}
	if c.Z {
		t.Fatalf("Z flag should be clear, A != operand")
	}
}

func TestBITChecksBits6And7WithoutTouchingA(t *testing.T) {
	prg := []byte{0xA9, 0xFF, 0x85, 0x10, 0xA9, 0x00, 0x24, 0x10} // LDA #$FF; STA $10; LDA #$00; BIT $10
	c, _ := newTestSystem(t, prg)
	c.Step()
	c.Step()
	c.Step()
	c.Step()
	if c.A != 0x00 {
		t.Fatalf("BIT must not modify A, got %#02x", c.A)
	}
	if !c.N || !c.V {
		t.Fatalf("N/V should mirror bits 7/6 of the operand: N=%v V=%v", c.N, c.V)
	}
	if !c.Z {
		t.Fatalf("Z should be set, A & operand == 0")
	}
}

// TestJMPIndirectPageWrapBug reproduces the classic 6502 bug: a vector at a
// page boundary ($xxFF) reads its high byte from $xx00 of the SAME page,
// not the next one. Cartridge ROM isn't writable through the bus, so the
// pointer bytes are placed directly in the PRG image instead.
func TestJMPIndirectPageWrapBug(t *testing.T) {
	image := make([]byte, 32*1024)
	image[0], image[1], image[2] = 0x6C, 0xFF, 0x81 // JMP ($81FF)
	image[0x1FF] = 0x34                             // $81FF: pointer low byte
	image[0x100] = 0x12                             // $8100: wrapped (buggy) high byte
	image[0x200] = 0x99                             // $8200: correct-but-wrong-hardware high byte
	image[0x7FFC], image[0x7FFD] = 0x00, 0x80

	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(2)
	buf.WriteByte(1)
	buf.Write(make([]byte, 10))
	buf.Write(image)
	buf.Write(make([]byte, 8*1024))
	cart, err := cartridge.Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	b := bus.New(cart)
	c := cpu.New(b)
	c.Reset()

	c.Step()
	if c.PC != 0x1234 {
		t.Fatalf("PC = %#04x, want $1234 (page-wrap bug reproduced)", c.PC)
	}
}

func TestJSRThenRTSRoundTrips(t *testing.T) {
	prg := make([]byte, 0x10)
	prg[0] = 0x20 // JSR $8005
	prg[1] = 0x05
	prg[2] = 0x80
	prg[3] = 0xEA // NOP (return lands here)
	prg[5] = 0x60 // RTS (subroutine body, at $8005)
	c, _ := newTestSystem(t, prg)

	c.Step() // JSR
	if c.PC != 0x8005 {
		t.Fatalf("PC after JSR = %#04x, want $8005", c.PC)
	}
	c.Step() // RTS
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want $8003 (instruction after JSR)", c.PC)
	}
}

func TestBRKPushesBreakFlagSet(t *testing.T) {
	prg := []byte{0x00} // BRK
	image := make([]byte, 32*1024)
	copy(image, prg)
	image[0x7FFC], image[0x7FFD] = 0x00, 0x80
	image[0x7FFE], image[0x7FFF] = 0x00, 0x90 // IRQ/BRK vector -> $9000

	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(2)
	buf.WriteByte(1)
	buf.Write(make([]byte, 10))
	buf.Write(image)
	buf.Write(make([]byte, 8*1024))
	cart, err := cartridge.Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	b := bus.New(cart)
	c := cpu.New(b)
	c.Reset()

	spBefore := c.SP
	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("PC after BRK = %#04x, want $9000", c.PC)
	}
	pushed := b.Peek(0x0100 + uint16(spBefore-2)) // status is the third byte BRK pushes
	if pushed&0x10 == 0 {
		t.Fatalf("status pushed by BRK should have the B flag set, got %#02x", pushed)
	}
}

func TestDCPUnofficialOpcodeCombinesDecAndCompare(t *testing.T) {
	// LDA #$05; STA $10; LDA #$05; DCP $10 -> $10 becomes $04, compare 5 vs 4.
	prg := []byte{0xA9, 0x05, 0x85, 0x10, 0xA9, 0x05, 0xC7, 0x10}
	c, b := newTestSystem(t, prg)
	c.Step()
	c.Step()
	c.Step()
	c.Step()
	if got := b.Peek(0x0010); got != 0x04 {
		t.Fatalf("$10 = %#02x after DCP, want $04", got)
	}
	if !c.C {
		t.Fatalf("C should be set, A(5) >= decremented value(4)")
	}
}

func TestStepPanicsOnUndefinedOpcode(t *testing.T) {
	c, _ := newTestSystem(t, []byte{0x02}) // JAM/KIL, never assigned an exec
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on an undefined opcode")
		}
	}()
	c.Step()
}

func TestNMIServicedBetweenInstructions(t *testing.T) {
	image := make([]byte, 32*1024)
	image[0] = 0xEA // NOP at $8000
	image[0x7FFA], image[0x7FFB] = 0x00, 0x90 // NMI vector -> $9000
	image[0x7FFC], image[0x7FFD] = 0x00, 0x80

	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(2)
	buf.WriteByte(1)
	buf.Write(make([]byte, 10))
	buf.Write(image)
	buf.Write(make([]byte, 8*1024))
	cart, err := cartridge.Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	b := bus.New(cart)
	c := cpu.New(b)
	c.Reset()

	b.NMI.Schedule(0)
	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("PC after serviced NMI = %#04x, want $9000", c.PC)
	}
}

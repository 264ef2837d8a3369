// Package cpu implements the MOS 6502 core used by the NES (the Ricoh
// 2A03), decoupling addressing-mode operand resolution from instruction
// execution per spec.md section 4.1. Every Bus access, including the
// hardware's documented dummy reads, is performed explicitly so that
// cycle counts fall out of the bus traffic itself rather than a lookup
// table.
package cpu

import (
	"fmt"

	"nesgo/internal/nesstatus"
)

// AddressingMode identifies how an instruction's operand is located.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase   = 0x0100
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Bus is everything the CPU needs from the system bus: clocked memory
// access and the two interrupt latches it polls between instructions.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	Peek(addr uint16) uint8
	NMIPending() bool
	AcknowledgeNMI()
	IRQPending() bool
	AcknowledgeIRQ()
}

// CPU is a 2A03: registers, flags, and the bus it executes against.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	C, Z, I, D, V, N bool

	bus Bus

	trace    bool
	traceLog []string
}

// New creates a CPU bound to bus. Call Reset before running it.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// SetTrace enables or disables per-instruction trace logging (line layout
// described on formatTrace), consumed via
// DrainTrace (spec.md section 6's -trace flag).
func (c *CPU) SetTrace(enabled bool) {
	c.trace = enabled
}

// DrainTrace returns and clears the buffered trace lines.
func (c *CPU) DrainTrace() []string {
	lines := c.traceLog
	c.traceLog = nil
	return lines
}

// Reset performs the 6502 reset sequence: two dummy PC reads, three stack
// reads (real hardware never writes during reset, it just decrements SP),
// then the two-byte vector fetch from $FFFC. SP lands on $FD the same way
// real hardware does, by decrementing three times from whatever it held.
func (c *CPU) Reset() {
	c.dummyRead(c.PC)
	c.dummyRead(c.PC)
	c.dummyRead(stackBase + uint16(c.SP))
	c.SP--
	c.dummyRead(stackBase + uint16(c.SP))
	c.SP--
	c.dummyRead(stackBase + uint16(c.SP))
	c.SP--

	lo := c.read(resetVector)
	hi := c.read(resetVector + 1)
	c.PC = uint16(lo) | uint16(hi)<<8
	c.I = true
}

// Step executes one instruction, servicing a pending NMI or IRQ first if
// one is ready.
func (c *CPU) Step() {
	if c.bus.NMIPending() {
		c.serviceInterrupt(nmiVector, false)
		c.bus.AcknowledgeNMI()
		return
	}
	if !c.I && c.bus.IRQPending() {
		c.serviceInterrupt(irqVector, false)
		c.bus.AcknowledgeIRQ()
		return
	}

	var traceLine string
	if c.trace {
		traceLine = c.formatTrace()
	}

	opcode := c.fetch()
	entry := opcodeTable[opcode]
	if entry.exec == nil {
		panic(nesstatus.BadOpcode(opcode, c.PC-1))
	}
	entry.exec(c, entry.mode)

	if c.trace {
		c.traceLog = append(c.traceLog, traceLine)
	}
}

// serviceInterrupt runs the shared NMI/IRQ hardware sequence: two internal
// cycles, push PCH/PCL/P (with B clear, U set), then fetch the vector.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.dummyRead(c.PC)
	c.dummyRead(c.PC)
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC & 0xFF))
	c.push(c.statusByte(brk))
	c.I = true
	lo := c.read(vector)
	hi := c.read(vector + 1)
	c.PC = uint16(lo) | uint16(hi)<<8
}

func (c *CPU) read(addr uint16) uint8         { return c.bus.Read(addr) }
func (c *CPU) write(addr uint16, value uint8) { c.bus.Write(addr, value) }
func (c *CPU) dummyRead(addr uint16) uint8    { return c.bus.Read(addr) }

func (c *CPU) fetch() uint8 {
	v := c.read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push(v uint8) {
	c.write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(stackBase + uint16(c.SP))
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

// statusByte packs the flags into the format pushed to the stack. brk
// selects the B bit: set for PHP/BRK, clear for hardware interrupts. Bit 5
// is always set, matching the 6502's unused-but-wired-high bit.
func (c *CPU) statusByte(brk bool) uint8 {
	var v uint8
	if c.N {
		v |= 0x80
	}
	if c.V {
		v |= 0x40
	}
	v |= 0x20
	if brk {
		v |= 0x10
	}
	if c.D {
		v |= 0x08
	}
	if c.I {
		v |= 0x04
	}
	if c.Z {
		v |= 0x02
	}
	if c.C {
		v |= 0x01
	}
	return v
}

// setStatusByte loads flags from a stack byte. The B and unused bits have
// no backing flip-flop on real hardware, so PLP/RTI never change CPU state
// from them.
func (c *CPU) setStatusByte(v uint8) {
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
	c.D = v&0x08 != 0
	c.I = v&0x04 != 0
	c.Z = v&0x02 != 0
	c.C = v&0x01 != 0
}

// formatTrace renders one trace line for the instruction about to execute:
// PC, opcode byte, and A/X/Y/P/SP in nestest's column style. It omits the
// operand bytes, disassembly, and PPU/CYC columns, so lines are not
// byte-identical to a nestest log. The opcode is read via Peek so tracing
// never perturbs PPU/APU timing.
func (c *CPU) formatTrace() string {
	opcode := c.bus.Peek(c.PC)
	return fmt.Sprintf("%04X  %02X  A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.PC, opcode, c.A, c.X, c.Y, c.statusByte(false), c.SP)
}

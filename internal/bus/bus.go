// Package bus implements the NES system bus: the single address space CPU,
// PPU registers, APU registers, controllers, and cartridge all sit on, per
// spec.md sections 3 and 4.3.
package bus

import (
	"github.com/golang/glog"

	"nesgo/internal/apu"
	"nesgo/internal/cartridge"
	"nesgo/internal/input"
	"nesgo/internal/interrupt"
	"nesgo/internal/nesstatus"
	"nesgo/internal/ppu"
)

// Bus owns every component the CPU's 16-bit address space can reach. It
// does not own the CPU itself: the CPU holds a reference to the Bus as its
// memory interface, so the dependency runs one way only.
type Bus struct {
	ram [0x0800]uint8

	PPU       *ppu.PPU
	APU       *apu.APU
	Cartridge *cartridge.Cartridge
	Joypad1   *input.Joypad
	Joypad2   *input.Joypad

	NMI *interrupt.Latch
	IRQ *interrupt.Latch

	cycles uint64

	dmaActive   bool
	oamDMAValue uint8 // last byte written during OAM DMA, for trace/debug only
}

// New creates a Bus wired to cart, with fresh PPU/APU/controller state and
// the NMI latch the PPU schedules against at vblank entry.
func New(cart *cartridge.Cartridge) *Bus {
	nmi := &interrupt.Latch{}
	b := &Bus{
		PPU:       ppu.New(cart, nmi),
		APU:       apu.New(),
		Cartridge: cart,
		Joypad1:   input.New(),
		Joypad2:   input.New(),
		NMI:       nmi,
		IRQ:       &interrupt.Latch{},
	}
	return b
}

// Reset returns every owned component to its power-up state. It does not
// touch the CPU; callers reset the CPU separately after wiring it to this
// bus, matching the teacher's component-reset ordering.
func (b *Bus) Reset() {
	b.ram = [0x0800]uint8{}
	b.PPU.Reset()
	b.APU.Reset()
	b.Joypad1.Reset()
	b.Joypad2.Reset()
	b.NMI.Acknowledge()
	b.IRQ.Acknowledge()
	b.dmaActive = false
}

// Cycles reports the number of bus accesses (== CPU cycles) since reset.
func (b *Bus) Cycles() uint64 {
	return b.cycles
}

// tick is the single place that advances time: one bus access is one CPU
// cycle, and the PPU runs at exactly 3 dots per CPU cycle (spec.md
// section 4.3, invariant "PPU dots == 3 * CPU cycles").
func (b *Bus) tick() {
	b.cycles++
	b.PPU.Tick()
	b.PPU.Tick()
	b.PPU.Tick()
	b.NMI.Tick()
	b.IRQ.Tick()
}

// Read performs one clocked CPU read.
func (b *Bus) Read(addr uint16) uint8 {
	b.tick()
	return b.read(addr)
}

// Write performs one clocked CPU write.
func (b *Bus) Write(addr uint16, value uint8) {
	b.tick()
	b.write(addr, value)
}

// Peek reads without advancing the clock, for trace logging and debugger
// inspection (spec.md section 6's -trace flag) where disassembly must not
// perturb PPU/APU timing.
func (b *Bus) Peek(addr uint16) uint8 {
	return b.read(addr)
}

// NMIPending and IRQPending satisfy cpu.Bus, letting the CPU poll the two
// latches Bus owns without knowing anything about the PPU or APU that arm
// them.
func (b *Bus) NMIPending() bool { return b.NMI.Ready() }
func (b *Bus) AcknowledgeNMI()  { b.NMI.Acknowledge() }
func (b *Bus) IRQPending() bool { return b.IRQ.Ready() }
func (b *Bus) AcknowledgeIRQ()  { b.IRQ.Acknowledge() }

func (b *Bus) read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr%0x0800]
	case addr < 0x4000:
		return b.PPU.ReadRegister(0x2000 + (addr % 8))
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return b.Joypad1.Read()
	case addr == 0x4017:
		return b.Joypad2.Read()
	case addr < 0x4018:
		return 0 // open bus: $4000-$4013 and the rest of $4014/$4018 range are write-only
	case addr < 0x4020:
		panic(nesstatus.AtAddr(nesstatus.DisabledRegion, addr))
	default:
		return b.Cartridge.ReadCPU(addr)
	}
}

func (b *Bus) write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr%0x0800] = value
	case addr < 0x4000:
		b.PPU.WriteRegister(0x2000+(addr%8), value)
	case addr == 0x4014:
		b.runOAMDMA(value)
	case addr == 0x4016:
		b.Joypad1.Write(value)
		b.Joypad2.Write(value)
	case addr < 0x4018:
		// $4000-$4013, $4015, $4017 (APU registers and frame counter).
		b.APU.WriteRegister(addr, value)
	case addr < 0x4020:
		panic(nesstatus.AtAddr(nesstatus.DisabledRegion, addr))
	default:
		b.Cartridge.WriteCPU(addr, value)
	}
}

// runOAMDMA copies 256 bytes from page*$100 into PPU OAM starting at the
// PPU's current OAMADDR, stealing 513 cycles (514 if begun on an odd CPU
// cycle) per spec.md scenario S3. The initiating $4014 write's own tick
// has already been charged by Write before this runs.
func (b *Bus) runOAMDMA(page uint8) {
	if b.dmaActive {
		glog.Warningf("bus: OAM DMA re-triggered while already in progress")
	}
	b.dmaActive = true
	defer func() { b.dmaActive = false }()

	if b.cycles%2 == 1 {
		b.tick() // extra alignment cycle when DMA starts on an odd CPU cycle
	}
	b.tick() // one dummy cycle, always

	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.tick()
		value := b.read(base + uint16(i))
		b.tick()
		b.PPU.WriteOAMByte(value)
		b.oamDMAValue = value
	}
}

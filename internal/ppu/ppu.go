// Package ppu implements the NES Picture Processing Unit (2C02): its eight
// memory-mapped registers, VRAM/palette address space, OAM, and the
// scanline-based render pipeline, per spec.md section 4.2.
package ppu

import (
	"nesgo/internal/cartridge"
	"nesgo/internal/frame"
	"nesgo/internal/interrupt"
)

const (
	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	visibleScanlines  = 240
	postRenderLine    = 240
	vblankStartLine   = 241
	preRenderLine     = 261
)

// PPU is the NES 2C02. It owns CHR memory directly (handed over by the
// Cartridge at construction, per spec.md's ownership model) and the
// current Frame.
type PPU struct {
	ctrl, mask, status uint8
	oamAddr            uint8

	v, t  vramAddr
	fineX uint8
	w     bool // write latch, shared by $2005 and $2006

	readBuffer uint8
	openBus    uint8

	dot      int
	scanline int
	oddFrame bool

	oam        [256]uint8
	nametables [0x800]uint8
	paletteRAM [32]uint8

	chr         []uint8
	chrWritable bool
	mirror      cartridge.Mirroring

	nmi *interrupt.Latch

	out Frame

	onFrameComplete func()
}

// Frame is the destination the PPU paints into; it matches frame.Frame's
// shape exactly, kept as a local alias so this package's exported surface
// doesn't leak the frame package's type identity to every caller.
type Frame = frame.Frame

// New creates a PPU bound to the cartridge's CHR memory and the shared NMI
// latch it schedules against at vblank entry.
func New(cart *cartridge.Cartridge, nmi *interrupt.Latch) *PPU {
	chr, writable := cart.TakeCHR()
	return &PPU{
		chr:         chr,
		chrWritable: writable,
		mirror:      cart.Mirror(),
		nmi:         nmi,
		scanline:    preRenderLine,
		status:      0x80,
	}
}

// Reset returns the PPU to its power-up state.
func (p *PPU) Reset() {
	nmi := p.nmi
	chr, writable, mirror := p.chr, p.chrWritable, p.mirror
	*p = PPU{chr: chr, chrWritable: writable, mirror: mirror, nmi: nmi, scanline: preRenderLine, status: 0x80}
}

// SetFrameCompleteCallback installs a hook invoked once per frame, right
// as the post-render scanline begins and Frame() is safe to read.
func (p *PPU) SetFrameCompleteCallback(f func()) {
	p.onFrameComplete = f
}

// Frame returns the PPU's output frame buffer. It is read-only to the
// host between frame-complete signals, per spec.md's lifetime rules.
func (p *PPU) Frame() *Frame {
	return &p.out
}

// DebugState is a snapshot of PPU register and timing state for the host
// application's debug overlay. Reading it never affects emulation.
type DebugState struct {
	Scanline, Dot      int
	Ctrl, Mask, Status uint8
	V, T               uint16
}

// DebugState reports the PPU's current register and timing state.
func (p *PPU) DebugState() DebugState {
	return DebugState{
		Scanline: p.scanline,
		Dot:      p.dot,
		Ctrl:     p.ctrl,
		Mask:     p.mask,
		Status:   p.status,
		V:        p.v.addr(),
		T:        p.t.addr(),
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&0x18 != 0
}

func (p *PPU) backgroundEnabled() bool { return p.mask&0x08 != 0 }
func (p *PPU) spritesEnabled() bool    { return p.mask&0x10 != 0 }
func (p *PPU) spriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

// ReadRegister handles a CPU read of $2000-$2007 (already folded to its
// 0-7 register index by the bus's every-8-bytes mirroring).
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg & 7 {
	case 2: // PPUSTATUS
		result := (p.status & 0xE0) | (p.openBus & 0x1F)
		p.status &^= 0x80
		p.w = false
		return result
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		addr := p.v.addr() & 0x3FFF
		var result uint8
		if addr >= 0x3F00 {
			result = p.readPalette(addr)
			p.readBuffer = p.readVRAM(addr - 0x1000)
		} else {
			result = p.readBuffer
			p.readBuffer = p.readVRAM(addr)
		}
		p.v.data += p.vramIncrement()
		p.openBus = result
		return result
	default:
		// $2000, $2001, $2003, $2005, $2006 are write-only; reads return
		// open bus, the documented recoverable behavior for
		// ReadFromWriteOnly (spec.md section 7).
		return p.openBus
	}
}

// WriteRegister handles a CPU write of $2000-$2007.
func (p *PPU) WriteRegister(reg uint16, value uint8) {
	p.openBus = value
	switch reg & 7 {
	case 0: // PPUCTRL
		p.ctrl = value
		p.t.setNametable(uint16(value) & 0x03)
	case 1: // PPUMASK
		p.mask = value
	case 3: // OAMADDR
		p.oamAddr = value
	case 4: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.t.setCoarseX(uint16(value) >> 3)
			p.fineX = value & 0x07
		} else {
			p.t.setCoarseY(uint16(value) >> 3)
			p.t.setFineY(uint16(value) & 0x07)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if !p.w {
			p.t.setHigh(value)
		} else {
			p.t.setLow(value)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writeVRAM(p.v.addr()&0x3FFF, value)
		p.v.data += p.vramIncrement()
	}
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

// WriteOAMByte is the entry point OAM DMA uses: it writes through the same
// post-incrementing path as a CPU write to $2004, honoring whatever
// OAMADDR was left at when the DMA began (spec.md section 4.2).
func (p *PPU) WriteOAMByte(value uint8) {
	p.oam[p.oamAddr] = value
	p.oamAddr++
}

func (p *PPU) readCHR(addr uint16) uint8 {
	if int(addr) < len(p.chr) {
		return p.chr[addr]
	}
	return 0
}

func (p *PPU) writeCHR(addr uint16, value uint8) {
	if p.chrWritable && int(addr) < len(p.chr) {
		p.chr[addr] = value
	}
}

func (p *PPU) mirrorNametable(addr uint16) int {
	table := (addr - 0x2000) / 0x400
	offset := (addr - 0x2000) % 0x400
	var physical uint16
	switch p.mirror {
	case cartridge.Vertical:
		physical = table % 2
	default: // Horizontal
		physical = table / 2
	}
	return int(physical*0x400 + offset)
}

func (p *PPU) readNametable(addr uint16) uint8 {
	return p.nametables[p.mirrorNametable(0x2000+(addr&0x0FFF))]
}

func (p *PPU) writeNametable(addr uint16, value uint8) {
	p.nametables[p.mirrorNametable(0x2000+(addr&0x0FFF))] = value
}

func palettePhysical(addr uint16) uint16 {
	idx := addr & 0x1F
	if idx == 0x10 || idx == 0x14 || idx == 0x18 || idx == 0x1C {
		idx -= 0x10
	}
	return idx
}

func (p *PPU) readPalette(addr uint16) uint8 {
	return p.paletteRAM[palettePhysical(addr)]
}

func (p *PPU) writePalette(addr uint16, value uint8) {
	p.paletteRAM[palettePhysical(addr)] = value & 0x3F
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.readCHR(addr)
	case addr < 0x3F00:
		return p.readNametable(addr)
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.writeCHR(addr, value)
	case addr < 0x3F00:
		p.writeNametable(addr, value)
	default:
		p.writePalette(addr, value)
	}
}

// Tick advances the PPU by exactly one dot. The Bus calls this three times
// per CPU bus access.
func (p *PPU) Tick() {
	p.runScanlineEvents()
	p.advanceDot()
}

func (p *PPU) runScanlineEvents() {
	visible := p.scanline >= 0 && p.scanline < visibleScanlines
	switch {
	case p.dot == 1 && p.scanline == vblankStartLine:
		p.status |= 0x80
		if p.ctrl&0x80 != 0 {
			p.nmi.Schedule(1)
		}
	case p.dot == 1 && p.scanline == preRenderLine:
		p.status &^= 0xE0 // clear vblank, sprite0 hit, sprite overflow
	case p.dot == 256 && visible:
		p.renderScanline(p.scanline)
		if p.renderingEnabled() {
			p.v.incrementY()
		}
	case p.dot == 257 && (visible || p.scanline == preRenderLine):
		if p.renderingEnabled() {
			p.v.copyHorizontal(p.t)
		}
	case p.dot == 304 && p.scanline == preRenderLine:
		if p.renderingEnabled() {
			p.v.copyVertical(p.t)
		}
	}
}

func (p *PPU) advanceDot() {
	p.dot++
	skipLastDot := p.scanline == preRenderLine && p.oddFrame && p.renderingEnabled()
	limit := dotsPerScanline
	if skipLastDot {
		limit--
	}
	if p.dot >= limit {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.oddFrame = !p.oddFrame
		}
		if p.scanline == postRenderLine && p.dot == 0 && p.onFrameComplete != nil {
			p.onFrameComplete()
		}
	}
}

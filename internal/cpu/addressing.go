package cpu

// readOperand resolves mode and returns the operand's value for
// "read" category instructions (LDA, ADC, CMP, ...). Indexed modes only
// pay the extra cycle when the addition actually crosses a page, matching
// real 6502 timing.
func (c *CPU) readOperand(mode AddressingMode) uint8 {
	switch mode {
	case Immediate:
		return c.fetch()
	case ZeroPage:
		return c.read(uint16(c.fetch()))
	case ZeroPageX:
		zp := c.fetch()
		c.dummyRead(uint16(zp))
		return c.read(uint16(zp + c.X))
	case ZeroPageY:
		zp := c.fetch()
		c.dummyRead(uint16(zp))
		return c.read(uint16(zp + c.Y))
	case Absolute:
		return c.read(c.fetchWord())
	case AbsoluteX:
		return c.readIndexed(c.fetchWord(), c.X)
	case AbsoluteY:
		return c.readIndexed(c.fetchWord(), c.Y)
	case IndexedIndirect:
		zp := c.fetch()
		c.dummyRead(uint16(zp))
		ptr := zp + c.X
		lo := c.read(uint16(ptr))
		hi := c.read(uint16(ptr + 1))
		return c.read(uint16(lo) | uint16(hi)<<8)
	case IndirectIndexed:
		zp := c.fetch()
		lo := c.read(uint16(zp))
		hi := c.read(uint16(zp + 1))
		base := uint16(lo) | uint16(hi)<<8
		return c.readIndexed(base, c.Y)
	default:
		return 0
	}
}

// readIndexed adds index to base, charging the one-cycle page-cross
// penalty only when the addition actually changes the high byte.
func (c *CPU) readIndexed(base uint16, index uint8) uint8 {
	addr := base + uint16(index)
	if addr&0xFF00 != base&0xFF00 {
		wrong := (base & 0xFF00) | (addr & 0x00FF)
		c.dummyRead(wrong)
	}
	return c.read(addr)
}

// resolveAddress resolves mode to an effective address for "write" and
// "read-modify-write" category instructions. Unlike readOperand, indexed
// modes always pay the extra cycle: a store or RMW can't early-exit before
// knowing the final address, since it must not touch the wrong one.
func (c *CPU) resolveAddress(mode AddressingMode) uint16 {
	switch mode {
	case ZeroPage:
		return uint16(c.fetch())
	case ZeroPageX:
		zp := c.fetch()
		c.dummyRead(uint16(zp))
		return uint16(zp + c.X)
	case ZeroPageY:
		zp := c.fetch()
		c.dummyRead(uint16(zp))
		return uint16(zp + c.Y)
	case Absolute:
		return c.fetchWord()
	case AbsoluteX:
		return c.indexedAddress(c.fetchWord(), c.X)
	case AbsoluteY:
		return c.indexedAddress(c.fetchWord(), c.Y)
	case IndexedIndirect:
		zp := c.fetch()
		c.dummyRead(uint16(zp))
		ptr := zp + c.X
		lo := c.read(uint16(ptr))
		hi := c.read(uint16(ptr + 1))
		return uint16(lo) | uint16(hi)<<8
	case IndirectIndexed:
		zp := c.fetch()
		lo := c.read(uint16(zp))
		hi := c.read(uint16(zp + 1))
		base := uint16(lo) | uint16(hi)<<8
		return c.indexedAddress(base, c.Y)
	default:
		return 0
	}
}

func (c *CPU) indexedAddress(base uint16, index uint8) uint16 {
	addr := base + uint16(index)
	wrong := (base & 0xFF00) | (addr & 0x00FF)
	c.dummyRead(wrong)
	return addr
}

// branch implements the shared relative-branch timing: the offset byte is
// always fetched, a taken branch costs one extra internal cycle, and a
// taken branch that crosses a page costs a second.
func (c *CPU) branch(taken bool) {
	offset := int8(c.fetch())
	if !taken {
		return
	}
	c.dummyRead(c.PC)
	target := uint16(int32(c.PC) + int32(offset))
	if target&0xFF00 != c.PC&0xFF00 {
		wrong := (c.PC & 0xFF00) | (target & 0x00FF)
		c.dummyRead(wrong)
	}
	c.PC = target
}

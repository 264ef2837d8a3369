package cartridge

import "nesgo/internal/nesstatus"

// newMapper selects the Mapper implementation for a cartridge's header.
// Only mapper 0 (NROM) is implemented, per spec.md's non-goals; any other
// id is a hard UnsupportedMapper error at load time.
func newMapper(cart *Cartridge) (Mapper, error) {
	switch cart.Header.MapperID {
	case 0:
		return newNROM(cart), nil
	default:
		return nil, nesstatus.BadMapper(cart.Header.MapperID)
	}
}

// nrom implements mapper 0: NROM-128 (16KB PRG, mirrored across $8000 and
// $C000) or NROM-256 (32KB PRG, linear), plus up to 8KB of PRG-RAM at
// $6000-$7FFF and either CHR-ROM or CHR-RAM at PPU $0000-$1FFF.
type nrom struct {
	cart     *Cartridge
	prgBanks int // 1 (NROM-128) or 2 (NROM-256)
}

func newNROM(cart *Cartridge) *nrom {
	banks := cart.prgSize / prgPageSize
	if banks < 1 {
		banks = 1
	}
	return &nrom{cart: cart, prgBanks: banks}
}

func (m *nrom) MapCPURead(addr uint16) (int, bool) {
	c := m.cart
	switch {
	case addr >= 0x8000:
		offset := int(addr - 0x8000)
		if m.prgBanks == 1 {
			offset &= prgPageSize - 1 // NROM-128 mirrors 16KB across 32KB
		}
		if offset >= c.prgSize {
			return 0, false
		}
		return c.prgOff + offset, true
	case addr >= 0x6000 && int(addr-0x6000) < c.prgOff:
		return int(addr - 0x6000), true
	default:
		return 0, false
	}
}

func (m *nrom) MapCPUWrite(addr uint16) (int, bool) {
	c := m.cart
	if addr >= 0x6000 && addr < 0x8000 && int(addr-0x6000) < c.prgOff {
		return int(addr - 0x6000), true
	}
	return 0, false // writes to $8000-$FFFF (ROM) are dropped
}

func (m *nrom) Mirror() Mirroring {
	return m.cart.Header.Mirroring
}

package cartridge

import (
	"encoding/binary"
	"io"
	"os"

	"nesgo/internal/nesstatus"
)

const (
	prgPageSize = 16 * 1024
	chrPageSize = 8 * 1024
	prgRAMPage  = 8 * 1024
	trainerSize = 512

	iNESMagic = 0x1A53454E // "NES\x1A" little-endian as u32
)

// header mirrors the 16-byte iNES 1.0 header, read field-by-field so a
// short file surfaces as nesstatus.TruncatedFile rather than a partially
// zeroed struct.
type header struct {
	Magic      uint32
	PRGPages   uint8
	CHRPages   uint8
	Flags6     uint8
	Flags7     uint8
	PRGRAMPages uint8
	_          [7]uint8 // bytes 9..15, ignored
}

func readHeader(r io.Reader) (header, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return header{}, nesstatus.New(nesstatus.TruncatedFile, "short iNES header")
	}
	if h.Magic != iNESMagic {
		return header{}, nesstatus.New(nesstatus.BadMagic, "missing NES\\x1A signature")
	}
	return h, nil
}

func (h header) mapperID() uint8 {
	return (h.Flags6 >> 4) | (h.Flags7 & 0xF0)
}

func (h header) hasTrainer() bool {
	return h.Flags6&0x04 != 0
}

func (h header) mirroring() Mirroring {
	if h.Flags6&0x01 != 0 {
		return Vertical
	}
	return Horizontal
}

func (h header) prgRAMSize() int {
	pages := h.PRGRAMPages
	if pages == 0 {
		pages = 1
	}
	return int(pages) * prgRAMPage
}

// Load parses an iNES 1.0 image from r and returns the Cartridge it
// describes, including a ready-to-use Mapper. See spec.md section 6 for
// the exact byte layout.
func Load(r io.Reader) (*Cartridge, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	if h.hasTrainer() {
		trainer := make([]byte, trainerSize)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, nesstatus.New(nesstatus.TruncatedFile, "short trainer")
		}
	}

	prgSize := int(h.PRGPages) * prgPageSize
	if prgSize == 0 {
		return nil, nesstatus.New(nesstatus.TruncatedFile, "zero PRG-ROM pages")
	}
	prgRAMSize := h.prgRAMSize()

	chrIsRAM := h.CHRPages == 0
	chrSize := int(h.CHRPages) * chrPageSize
	if chrIsRAM {
		chrSize = chrPageSize
	}

	// Layout: [PRG-RAM | PRG-ROM | CHR-ROM/RAM] in one contiguous array,
	// per spec.md section 3/4.4.
	data := make([]byte, prgRAMSize+prgSize+chrSize)

	prgOff := prgRAMSize
	if _, err := io.ReadFull(r, data[prgOff:prgOff+prgSize]); err != nil {
		return nil, nesstatus.New(nesstatus.TruncatedFile, "short PRG-ROM")
	}

	chrOff := prgOff + prgSize
	if !chrIsRAM {
		if _, err := io.ReadFull(r, data[chrOff:chrOff+chrSize]); err != nil {
			return nil, nesstatus.New(nesstatus.TruncatedFile, "short CHR-ROM")
		}
	}

	cart := &Cartridge{
		Header: Header{
			PRGPages:   h.PRGPages,
			CHRPages:   h.CHRPages,
			PRGRAMSize: prgRAMSize,
			MapperID:   h.mapperID(),
			Mirroring:  h.mirroring(),
			HasTrainer: h.hasTrainer(),
			CHRIsRAM:   chrIsRAM,
		},
		data:    data,
		prgOff:  prgOff,
		prgSize: prgSize,
		chrOff:  chrOff,
		chrSize: chrSize,
	}

	mapper, err := newMapper(cart)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper

	return cart, nil
}

// LoadFromFile opens path and parses it as an iNES 1.0 image.
func LoadFromFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nesstatus.New(nesstatus.TruncatedFile, "cannot open ROM file: "+err.Error())
	}
	defer f.Close()
	return Load(f)
}

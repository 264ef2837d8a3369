package cartridge

import (
	"bytes"
	"errors"
	"testing"

	"nesgo/internal/nesstatus"
)

// buildINES assembles a minimal iNES 1.0 image in memory.
func buildINES(prgPages, chrPages uint8, mapperID uint8, vertical bool, prg, chr []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(prgPages)
	buf.WriteByte(chrPages)
	flags6 := mapperID << 4
	if vertical {
		flags6 |= 0x01
	}
	buf.WriteByte(flags6)
	buf.WriteByte(mapperID & 0xF0)
	buf.Write(make([]byte, 8)) // flags8..15
	buf.Write(prg)
	buf.Write(chr)
	return buf.Bytes()
}

func TestLoadBadMagic(t *testing.T) {
	data := []byte("BAD\x1A")
	data = append(data, make([]byte, 12)...)
	_, err := Load(bytes.NewReader(data))
	var e *nesstatus.Error
	if !errors.As(err, &e) || e.Kind != nesstatus.BadMagic {
		t.Fatalf("expected BadMagic, got %v", err)
	}
}

func TestLoadTruncatedHeader(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("NES\x1A")))
	var e *nesstatus.Error
	if !errors.As(err, &e) || e.Kind != nesstatus.TruncatedFile {
		t.Fatalf("expected TruncatedFile, got %v", err)
	}
}

func TestLoadTruncatedPRG(t *testing.T) {
	data := buildINES(1, 1, 0, false, make([]byte, 100), make([]byte, chrPageSize))
	_, err := Load(bytes.NewReader(data))
	var e *nesstatus.Error
	if !errors.As(err, &e) || e.Kind != nesstatus.TruncatedFile {
		t.Fatalf("expected TruncatedFile for short PRG, got %v", err)
	}
}

func TestLoadUnsupportedMapper(t *testing.T) {
	data := buildINES(1, 1, 5, false, make([]byte, prgPageSize), make([]byte, chrPageSize))
	_, err := Load(bytes.NewReader(data))
	var e *nesstatus.Error
	if !errors.As(err, &e) || e.Kind != nesstatus.UnsupportedMapper {
		t.Fatalf("expected UnsupportedMapper, got %v", err)
	}
}

func TestNROM128Mirrors16KBAcross32KBSpace(t *testing.T) {
	prg := make([]byte, prgPageSize)
	for i := range prg {
		prg[i] = byte(i)
	}
	data := buildINES(1, 1, 0, false, prg, make([]byte, chrPageSize))
	cart, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for offset := 0; offset < prgPageSize; offset++ {
		lo := cart.ReadCPU(uint16(0x8000 + offset))
		hi := cart.ReadCPU(uint16(0xC000 + offset))
		if lo != hi {
			t.Fatalf("offset %#x: $8000 byte %#x != $C000 byte %#x", offset, lo, hi)
		}
	}
}

func TestNROM256LinearMapping(t *testing.T) {
	prg := make([]byte, 2*prgPageSize)
	for i := range prg {
		prg[i] = byte(i)
	}
	data := buildINES(2, 1, 0, false, prg, make([]byte, chrPageSize))
	cart, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cart.ReadCPU(0x8000) != 0x00 || cart.ReadCPU(0xC000) != prg[prgPageSize] {
		t.Fatalf("NROM-256 must map PRG linearly across the full 32KB window")
	}
}

func TestPRGRAMReadWrite(t *testing.T) {
	data := buildINES(1, 1, 0, false, make([]byte, prgPageSize), make([]byte, chrPageSize))
	cart, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cart.WriteCPU(0x6123, 0x42)
	if got := cart.ReadCPU(0x6123); got != 0x42 {
		t.Fatalf("PRG-RAM round trip got %#x want 0x42", got)
	}
	cart.WriteCPU(0x8000, 0xFF) // write to ROM must be dropped
	if got := cart.ReadCPU(0x8000); got != 0x00 {
		t.Fatalf("write to ROM space must not mutate it, got %#x", got)
	}
}

func TestCHRRAMFallbackWhenZeroCHRPages(t *testing.T) {
	data := buildINES(1, 0, 0, false, make([]byte, prgPageSize), nil)
	cart, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cart.Header.CHRIsRAM {
		t.Fatalf("zero CHR pages must produce CHR-RAM")
	}
	chr, writable := cart.TakeCHR()
	if !writable {
		t.Fatalf("CHR-RAM must be reported writable")
	}
	if len(chr) != chrPageSize {
		t.Fatalf("CHR-RAM fallback size = %d, want %d", len(chr), chrPageSize)
	}
	chr[0x0010] = 0x7E
	if chr[0x0010] != 0x7E {
		t.Fatalf("CHR-RAM round trip failed")
	}
}

func TestCHRROMIsNotWritable(t *testing.T) {
	chr := make([]byte, chrPageSize)
	data := buildINES(1, 1, 0, false, make([]byte, prgPageSize), chr)
	cart, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, writable := cart.TakeCHR()
	if writable {
		t.Fatalf("CHR-ROM must be reported non-writable")
	}
}

func TestMirroringFromFlags6(t *testing.T) {
	data := buildINES(1, 1, 0, true, make([]byte, prgPageSize), make([]byte, chrPageSize))
	cart, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cart.Mirror() != Vertical {
		t.Fatalf("flags6 bit0 set must select vertical mirroring")
	}
}

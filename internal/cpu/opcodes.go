package cpu

type opcodeEntry struct {
	name string
	mode AddressingMode
	exec func(*CPU, AddressingMode)
}

// opcodeTable maps all 256 opcode bytes to their mnemonic, addressing
// mode, and executor. Entries left zero-valued (exec == nil) are
// officially undefined opcodes (including the CPU-halting "JAM"/"KIL"
// family); Step reports them as nesstatus.InvalidOpcode.
var opcodeTable = [256]opcodeEntry{
	0x00: {"BRK", Implied, (*CPU).brk},
	0x01: {"ORA", IndexedIndirect, (*CPU).ora},
	0x03: {"SLO", IndexedIndirect, (*CPU).slo},
	0x04: {"NOP", ZeroPage, (*CPU).nop},
	0x05: {"ORA", ZeroPage, (*CPU).ora},
	0x06: {"ASL", ZeroPage, (*CPU).asl},
	0x07: {"SLO", ZeroPage, (*CPU).slo},
	0x08: {"PHP", Implied, (*CPU).php},
	0x09: {"ORA", Immediate, (*CPU).ora},
	0x0A: {"ASL", Accumulator, (*CPU).asl},
	0x0C: {"NOP", Absolute, (*CPU).nop},
	0x0D: {"ORA", Absolute, (*CPU).ora},
	0x0E: {"ASL", Absolute, (*CPU).asl},
	0x0F: {"SLO", Absolute, (*CPU).slo},

	0x10: {"BPL", Relative, (*CPU).bpl},
	0x11: {"ORA", IndirectIndexed, (*CPU).ora},
	0x13: {"SLO", IndirectIndexed, (*CPU).slo},
	0x14: {"NOP", ZeroPageX, (*CPU).nop},
	0x15: {"ORA", ZeroPageX, (*CPU).ora},
	0x16: {"ASL", ZeroPageX, (*CPU).asl},
	0x17: {"SLO", ZeroPageX, (*CPU).slo},
	0x18: {"CLC", Implied, (*CPU).clc},
	0x19: {"ORA", AbsoluteY, (*CPU).ora},
	0x1A: {"NOP", Implied, (*CPU).nop},
	0x1B: {"SLO", AbsoluteY, (*CPU).slo},
	0x1C: {"NOP", AbsoluteX, (*CPU).nop},
	0x1D: {"ORA", AbsoluteX, (*CPU).ora},
	0x1E: {"ASL", AbsoluteX, (*CPU).asl},
	0x1F: {"SLO", AbsoluteX, (*CPU).slo},

	0x20: {"JSR", Absolute, (*CPU).jsr},
	0x21: {"AND", IndexedIndirect, (*CPU).and},
	0x23: {"RLA", IndexedIndirect, (*CPU).rla},
	0x24: {"BIT", ZeroPage, (*CPU).bit},
	0x25: {"AND", ZeroPage, (*CPU).and},
	0x26: {"ROL", ZeroPage, (*CPU).rol},
	0x27: {"RLA", ZeroPage, (*CPU).rla},
	0x28: {"PLP", Implied, (*CPU).plp},
	0x29: {"AND", Immediate, (*CPU).and},
	0x2A: {"ROL", Accumulator, (*CPU).rol},
	0x2C: {"BIT", Absolute, (*CPU).bit},
	0x2D: {"AND", Absolute, (*CPU).and},
	0x2E: {"ROL", Absolute, (*CPU).rol},
	0x2F: {"RLA", Absolute, (*CPU).rla},

	0x30: {"BMI", Relative, (*CPU).bmi},
	0x31: {"AND", IndirectIndexed, (*CPU).and},
	0x33: {"RLA", IndirectIndexed, (*CPU).rla},
	0x34: {"NOP", ZeroPageX, (*CPU).nop},
	0x35: {"AND", ZeroPageX, (*CPU).and},
	0x36: {"ROL", ZeroPageX, (*CPU).rol},
	0x37: {"RLA", ZeroPageX, (*CPU).rla},
	0x38: {"SEC", Implied, (*CPU).sec},
	0x39: {"AND", AbsoluteY, (*CPU).and},
	0x3A: {"NOP", Implied, (*CPU).nop},
	0x3B: {"RLA", AbsoluteY, (*CPU).rla},
	0x3C: {"NOP", AbsoluteX, (*CPU).nop},
	0x3D: {"AND", AbsoluteX, (*CPU).and},
	0x3E: {"ROL", AbsoluteX, (*CPU).rol},
	0x3F: {"RLA", AbsoluteX, (*CPU).rla},

	0x40: {"RTI", Implied, (*CPU).rti},
	0x41: {"EOR", IndexedIndirect, (*CPU).eor},
	0x43: {"SRE", IndexedIndirect, (*CPU).sre},
	0x44: {"NOP", ZeroPage, (*CPU).nop},
	0x45: {"EOR", ZeroPage, (*CPU).eor},
	0x46: {"LSR", ZeroPage, (*CPU).lsr},
	0x47: {"SRE", ZeroPage, (*CPU).sre},
	0x48: {"PHA", Implied, (*CPU).pha},
	0x49: {"EOR", Immediate, (*CPU).eor},
	0x4A: {"LSR", Accumulator, (*CPU).lsr},
	0x4C: {"JMP", Absolute, (*CPU).jmp},
	0x4D: {"EOR", Absolute, (*CPU).eor},
	0x4E: {"LSR", Absolute, (*CPU).lsr},
	0x4F: {"SRE", Absolute, (*CPU).sre},

	0x50: {"BVC", Relative, (*CPU).bvc},
	0x51: {"EOR", IndirectIndexed, (*CPU).eor},
	0x53: {"SRE", IndirectIndexed, (*CPU).sre},
	0x54: {"NOP", ZeroPageX, (*CPU).nop},
	0x55: {"EOR", ZeroPageX, (*CPU).eor},
	0x56: {"LSR", ZeroPageX, (*CPU).lsr},
	0x57: {"SRE", ZeroPageX, (*CPU).sre},
	0x58: {"CLI", Implied, (*CPU).cli},
	0x59: {"EOR", AbsoluteY, (*CPU).eor},
	0x5A: {"NOP", Implied, (*CPU).nop},
	0x5B: {"SRE", AbsoluteY, (*CPU).sre},
	0x5C: {"NOP", AbsoluteX, (*CPU).nop},
	0x5D: {"EOR", AbsoluteX, (*CPU).eor},
	0x5E: {"LSR", AbsoluteX, (*CPU).lsr},
	0x5F: {"SRE", AbsoluteX, (*CPU).sre},

	0x60: {"RTS", Implied, (*CPU).rts},
	0x61: {"ADC", IndexedIndirect, (*CPU).adc},
	0x63: {"RRA", IndexedIndirect, (*CPU).rra},
	0x64: {"NOP", ZeroPage, (*CPU).nop},
	0x65: {"ADC", ZeroPage, (*CPU).adc},
	0x66: {"ROR", ZeroPage, (*CPU).ror},
	0x67: {"RRA", ZeroPage, (*CPU).rra},
	0x68: {"PLA", Implied, (*CPU).pla},
	0x69: {"ADC", Immediate, (*CPU).adc},
	0x6A: {"ROR", Accumulator, (*CPU).ror},
	0x6C: {"JMP", Indirect, (*CPU).jmpIndirect},
	0x6D: {"ADC", Absolute, (*CPU).adc},
	0x6E: {"ROR", Absolute, (*CPU).ror},
	0x6F: {"RRA", Absolute, (*CPU).rra},

	0x70: {"BVS", Relative, (*CPU).bvs},
	0x71: {"ADC", IndirectIndexed, (*CPU).adc},
	0x73: {"RRA", IndirectIndexed, (*CPU).rra},
	0x74: {"NOP", ZeroPageX, (*CPU).nop},
	0x75: {"ADC", ZeroPageX, (*CPU).adc},
	0x76: {"ROR", ZeroPageX, (*CPU).ror},
	0x77: {"RRA", ZeroPageX, (*CPU).rra},
	0x78: {"SEI", Implied, (*CPU).sei},
	0x79: {"ADC", AbsoluteY, (*CPU).adc},
	0x7A: {"NOP", Implied, (*CPU).nop},
	0x7B: {"RRA", AbsoluteY, (*CPU).rra},
	0x7C: {"NOP", AbsoluteX, (*CPU).nop},
	0x7D: {"ADC", AbsoluteX, (*CPU).adc},
	0x7E: {"ROR", AbsoluteX, (*CPU).ror},
	0x7F: {"RRA", AbsoluteX, (*CPU).rra},

	0x80: {"NOP", Immediate, (*CPU).nop},
	0x81: {"STA", IndexedIndirect, (*CPU).sta},
	0x82: {"NOP", Immediate, (*CPU).nop},
	0x83: {"SAX", IndexedIndirect, (*CPU).sax},
	0x84: {"STY", ZeroPage, (*CPU).sty},
	0x85: {"STA", ZeroPage, (*CPU).sta},
	0x86: {"STX", ZeroPage, (*CPU).stx},
	0x87: {"SAX", ZeroPage, (*CPU).sax},
	0x88: {"DEY", Implied, (*CPU).dey},
	0x89: {"NOP", Immediate, (*CPU).nop},
	0x8A: {"TXA", Implied, (*CPU).txa},
	0x8C: {"STY", Absolute, (*CPU).sty},
	0x8D: {"STA", Absolute, (*CPU).sta},
	0x8E: {"STX", Absolute, (*CPU).stx},
	0x8F: {"SAX", Absolute, (*CPU).sax},

	0x90: {"BCC", Relative, (*CPU).bcc},
	0x91: {"STA", IndirectIndexed, (*CPU).sta},
	0x94: {"STY", ZeroPageX, (*CPU).sty},
	0x95: {"STA", ZeroPageX, (*CPU).sta},
	0x96: {"STX", ZeroPageY, (*CPU).stx},
	0x97: {"SAX", ZeroPageY, (*CPU).sax},
	0x98: {"TYA", Implied, (*CPU).tya},
	0x99: {"STA", AbsoluteY, (*CPU).sta},
	0x9A: {"TXS", Implied, (*CPU).txs},
	0x9D: {"STA", AbsoluteX, (*CPU).sta},

	0xA0: {"LDY", Immediate, (*CPU).ldy},
	0xA1: {"LDA", IndexedIndirect, (*CPU).lda},
	0xA2: {"LDX", Immediate, (*CPU).ldx},
	0xA3: {"LAX", IndexedIndirect, (*CPU).lax},
	0xA4: {"LDY", ZeroPage, (*CPU).ldy},
	0xA5: {"LDA", ZeroPage, (*CPU).lda},
	0xA6: {"LDX", ZeroPage, (*CPU).ldx},
	0xA7: {"LAX", ZeroPage, (*CPU).lax},
	0xA8: {"TAY", Implied, (*CPU).tay},
	0xA9: {"LDA", Immediate, (*CPU).lda},
	0xAA: {"TAX", Implied, (*CPU).tax},
	0xAC: {"LDY", Absolute, (*CPU).ldy},
	0xAD: {"LDA", Absolute, (*CPU).lda},
	0xAE: {"LDX", Absolute, (*CPU).ldx},
	0xAF: {"LAX", Absolute, (*CPU).lax},

	0xB0: {"BCS", Relative, (*CPU).bcs},
	0xB1: {"LDA", IndirectIndexed, (*CPU).lda},
	0xB3: {"LAX", IndirectIndexed, (*CPU).lax},
	0xB4: {"LDY", ZeroPageX, (*CPU).ldy},
	0xB5: {"LDA", ZeroPageX, (*CPU).lda},
	0xB6: {"LDX", ZeroPageY, (*CPU).ldx},
	0xB7: {"LAX", ZeroPageY, (*CPU).lax},
	0xB8: {"CLV", Implied, (*CPU).clv},
	0xB9: {"LDA", AbsoluteY, (*CPU).lda},
	0xBA: {"TSX", Implied, (*CPU).tsx},
	0xBC: {"LDY", AbsoluteX, (*CPU).ldy},
	0xBD: {"LDA", AbsoluteX, (*CPU).lda},
	0xBE: {"LDX", AbsoluteY, (*CPU).ldx},
	0xBF: {"LAX", AbsoluteY, (*CPU).lax},

	0xC0: {"CPY", Immediate, (*CPU).cpy},
	0xC1: {"CMP", IndexedIndirect, (*CPU).cmp},
	0xC2: {"NOP", Immediate, (*CPU).nop},
	0xC3: {"DCP", IndexedIndirect, (*CPU).dcp},
	0xC4: {"CPY", ZeroPage, (*CPU).cpy},
	0xC5: {"CMP", ZeroPage, (*CPU).cmp},
	0xC6: {"DEC", ZeroPage, (*CPU).dec},
	0xC7: {"DCP", ZeroPage, (*CPU).dcp},
	0xC8: {"INY", Implied, (*CPU).iny},
	0xC9: {"CMP", Immediate, (*CPU).cmp},
	0xCA: {"DEX", Implied, (*CPU).dex},
	0xCC: {"CPY", Absolute, (*CPU).cpy},
	0xCD: {"CMP", Absolute, (*CPU).cmp},
	0xCE: {"DEC", Absolute, (*CPU).dec},
	0xCF: {"DCP", Absolute, (*CPU).dcp},

	0xD0: {"BNE", Relative, (*CPU).bne},
	0xD1: {"CMP", IndirectIndexed, (*CPU).cmp},
	0xD3: {"DCP", IndirectIndexed, (*CPU).dcp},
	0xD4: {"NOP", ZeroPageX, (*CPU).nop},
	0xD5: {"CMP", ZeroPageX, (*CPU).cmp},
	0xD6: {"DEC", ZeroPageX, (*CPU).dec},
	0xD7: {"DCP", ZeroPageX, (*CPU).dcp},
	0xD8: {"CLD", Implied, (*CPU).cld},
	0xD9: {"CMP", AbsoluteY, (*CPU).cmp},
	0xDA: {"NOP", Implied, (*CPU).nop},
	0xDB: {"DCP", AbsoluteY, (*CPU).dcp},
	0xDC: {"NOP", AbsoluteX, (*CPU).nop},
	0xDD: {"CMP", AbsoluteX, (*CPU).cmp},
	0xDE: {"DEC", AbsoluteX, (*CPU).dec},
	0xDF: {"DCP", AbsoluteX, (*CPU).dcp},

	0xE0: {"CPX", Immediate, (*CPU).cpx},
	0xE1: {"SBC", IndexedIndirect, (*CPU).sbc},
	0xE2: {"NOP", Immediate, (*CPU).nop},
	0xE3: {"ISC", IndexedIndirect, (*CPU).isc},
	0xE4: {"CPX", ZeroPage, (*CPU).cpx},
	0xE5: {"SBC", ZeroPage, (*CPU).sbc},
	0xE6: {"INC", ZeroPage, (*CPU).inc},
	0xE7: {"ISC", ZeroPage, (*CPU).isc},
	0xE8: {"INX", Implied, (*CPU).inx},
	0xE9: {"SBC", Immediate, (*CPU).sbc},
	0xEA: {"NOP", Implied, (*CPU).nop},
	0xEB: {"SBC", Immediate, (*CPU).sbc},
	0xEC: {"CPX", Absolute, (*CPU).cpx},
	0xED: {"SBC", Absolute, (*CPU).sbc},
	0xEE: {"INC", Absolute, (*CPU).inc},
	0xEF: {"ISC", Absolute, (*CPU).isc},

	0xF0: {"BEQ", Relative, (*CPU).beq},
	0xF1: {"SBC", IndirectIndexed, (*CPU).sbc},
	0xF3: {"ISC", IndirectIndexed, (*CPU).isc},
	0xF4: {"NOP", ZeroPageX, (*CPU).nop},
	0xF5: {"SBC", ZeroPageX, (*CPU).sbc},
	0xF6: {"INC", ZeroPageX, (*CPU).inc},
	0xF7: {"ISC", ZeroPageX, (*CPU).isc},
	0xF8: {"SED", Implied, (*CPU).sed},
	0xF9: {"SBC", AbsoluteY, (*CPU).sbc},
	0xFA: {"NOP", Implied, (*CPU).nop},
	0xFB: {"ISC", AbsoluteY, (*CPU).isc},
	0xFC: {"NOP", AbsoluteX, (*CPU).nop},
	0xFD: {"SBC", AbsoluteX, (*CPU).sbc},
	0xFE: {"INC", AbsoluteX, (*CPU).inc},
	0xFF: {"ISC", AbsoluteX, (*CPU).isc},
}

// Package apu is a register-level stub for the NES Audio Processing Unit.
// Audio generation is a declared non-goal (spec.md section 1); this package
// exists so the bus has somewhere to route $4000-$4017 and $4015 without a
// special case, and so a future real APU has a natural home for the state
// it would need.
package apu

import "github.com/golang/glog"

// channel holds the inert register state for one APU channel. Nothing
// here is clocked; it is a faithful place to store what a game writes,
// not a sound generator.
type channel struct {
	control uint8
	sweep   uint8
	timerLo uint8
	timerHi uint8
}

// APU is the NES Audio Processing Unit register file.
type APU struct {
	pulse1, pulse2 channel
	triangle       channel
	noise          channel
	dmc            channel

	frameCounterMode uint8 // bit 7 of $4017: 0 = 4-step, 1 = 5-step
	frameIRQInhibit  bool  // bit 6 of $4017

	channelEnable uint8 // $4015 write: bits 0-4 enable pulse1/2, triangle, noise, dmc
}

// New creates an APU with all registers cleared.
func New() *APU {
	return &APU{}
}

// Reset clears all register state, as on power-up.
func (a *APU) Reset() {
	*a = APU{}
}

// WriteRegister handles a CPU write in $4000-$4013, $4015, or $4017.
func (a *APU) WriteRegister(addr uint16, value uint8) {
	switch {
	case addr >= 0x4000 && addr <= 0x4003:
		writeChannel(&a.pulse1, addr-0x4000, value)
	case addr >= 0x4004 && addr <= 0x4007:
		writeChannel(&a.pulse2, addr-0x4004, value)
	case addr >= 0x4008 && addr <= 0x400B:
		writeChannel(&a.triangle, addr-0x4008, value)
	case addr >= 0x400C && addr <= 0x400F:
		writeChannel(&a.noise, addr-0x400C, value)
	case addr >= 0x4010 && addr <= 0x4013:
		writeChannel(&a.dmc, addr-0x4010, value)
	case addr == 0x4015:
		a.channelEnable = value & 0x1F
	case addr == 0x4017:
		a.frameCounterMode = value >> 7
		a.frameIRQInhibit = value&0x40 != 0
	default:
		glog.V(2).Infof("apu: unimplemented register write $%04X = $%02X", addr, value)
	}
}

func writeChannel(c *channel, reg uint16, value uint8) {
	switch reg {
	case 0:
		c.control = value
	case 1:
		c.sweep = value
	case 2:
		c.timerLo = value
	case 3:
		c.timerHi = value
	}
}

// ReadStatus handles a CPU read of $4015: bits 0-4 echo the channel-enable
// bits of the last $4015 write; bits 5-7 always read 0, so neither the frame
// IRQ (bit 6) nor the DMC IRQ (bit 7) is ever reported.
func (a *APU) ReadStatus() uint8 {
	return a.channelEnable & 0x1F
}

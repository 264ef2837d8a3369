// Package frame holds the NES output frame buffer and its fixed system
// palette. It has no dependents other than the PPU and sits at the bottom
// of the dependency graph alongside the mapper.
package frame

// Width and Height are the NES's fixed visible resolution.
const (
	Width  = 256
	Height = 240
)

// Frame is a 256x240 row-major RGB image, three bytes per pixel.
type Frame struct {
	Pix [Width * Height * 3]byte
}

// Set writes the RGB triple for the system-palette index at (x, y).
// Out-of-range coordinates are ignored; callers in the PPU never produce
// them but tests sometimes probe boundaries deliberately.
func (f *Frame) Set(x, y int, colorIndex uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	r, g, b := RGB(colorIndex)
	offset := (y*Width + x) * 3
	f.Pix[offset] = r
	f.Pix[offset+1] = g
	f.Pix[offset+2] = b
}

// SetRGB writes an already-resolved RGB triple at (x, y), for callers that
// applied grayscale/emphasis themselves via Emphasize.
func (f *Frame) SetRGB(x, y int, r, g, b byte) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	offset := (y*Width + x) * 3
	f.Pix[offset] = r
	f.Pix[offset+1] = g
	f.Pix[offset+2] = b
}

// At returns the RGB triple previously written at (x, y).
func (f *Frame) At(x, y int) (r, g, b byte) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, 0, 0
	}
	offset := (y*Width + x) * 3
	return f.Pix[offset], f.Pix[offset+1], f.Pix[offset+2]
}

// systemPalette is the fixed 64-entry NES 2C02 NTSC palette, indexed by
// the 6-bit value read out of PPU palette RAM.
var systemPalette = [64][3]byte{
	{0x66, 0x66, 0x66}, {0x00, 0x2A, 0x88}, {0x14, 0x12, 0xA7}, {0x3B, 0x00, 0xA4},
	{0x5C, 0x00, 0x7E}, {0x6E, 0x00, 0x40}, {0x6C, 0x06, 0x00}, {0x56, 0x1D, 0x00},
	{0x33, 0x35, 0x00}, {0x0B, 0x48, 0x00}, {0x00, 0x52, 0x00}, {0x00, 0x4F, 0x08},
	{0x00, 0x40, 0x4D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xAD, 0xAD, 0xAD}, {0x15, 0x5F, 0xD9}, {0x42, 0x40, 0xFF}, {0x75, 0x27, 0xFE},
	{0xA0, 0x1A, 0xCC}, {0xB7, 0x1E, 0x7B}, {0xB5, 0x31, 0x20}, {0x99, 0x4E, 0x00},
	{0x6B, 0x6D, 0x00}, {0x38, 0x87, 0x00}, {0x0C, 0x93, 0x00}, {0x00, 0x8F, 0x32},
	{0x00, 0x7C, 0x8D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0x64, 0xB0, 0xFF}, {0x92, 0x90, 0xFF}, {0xC6, 0x76, 0xFF},
	{0xF3, 0x6A, 0xFF}, {0xFE, 0x6E, 0xCC}, {0xFE, 0x81, 0x70}, {0xEA, 0x9E, 0x22},
	{0xBC, 0xBE, 0x00}, {0x88, 0xD8, 0x00}, {0x5C, 0xE4, 0x30}, {0x45, 0xE0, 0x82},
	{0x48, 0xCD, 0xDE}, {0x4F, 0x4F, 0x4F}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0xC0, 0xDF, 0xFF}, {0xD3, 0xD2, 0xFF}, {0xE8, 0xC8, 0xFF},
	{0xFB, 0xC2, 0xFF}, {0xFE, 0xC4, 0xEA}, {0xFE, 0xCC, 0xC5}, {0xF7, 0xD8, 0xA5},
	{0xE4, 0xE5, 0x94}, {0xCF, 0xF2, 0x9B}, {0xBE, 0xFB, 0xB3}, {0xB8, 0xF8, 0xD8},
	{0xB8, 0xF8, 0xF8}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

// RGB converts a 6-bit NES palette index into an 8-bit RGB triple.
func RGB(colorIndex uint8) (r, g, b byte) {
	c := systemPalette[colorIndex&0x3F]
	return c[0], c[1], c[2]
}

// Emphasize applies grayscale and R/G/B emphasis bits (PPUMASK bits 0, 5,
// 6, 7) to a system-palette index and returns the adjusted RGB triple.
// Grayscale ANDs the index with $30 before lookup; emphasis attenuates the
// two non-emphasized channels by roughly 25%, matching the widely measured
// NTSC 2C02 behavior.
func Emphasize(colorIndex uint8, grayscale, emphRed, emphGreen, emphBlue bool) (r, g, b byte) {
	idx := colorIndex
	if grayscale {
		idx &= 0x30
	}
	cr, cg, cb := RGB(idx)
	if !emphRed && !emphGreen && !emphBlue {
		return cr, cg, cb
	}
	const attenuate = 0.75
	if emphRed {
		cg = byte(float64(cg) * attenuate)
		cb = byte(float64(cb) * attenuate)
	}
	if emphGreen {
		cr = byte(float64(cr) * attenuate)
		cb = byte(float64(cb) * attenuate)
	}
	if emphBlue {
		cr = byte(float64(cr) * attenuate)
		cg = byte(float64(cg) * attenuate)
	}
	return cr, cg, cb
}

package ppu

import "nesgo/internal/frame"

// renderScanline paints one full row of the output frame. It is called
// once per visible scanline, at dot 256, rather than pixel-by-pixel: the
// spec's correctness bar is scanline-accurate output, not the hardware's
// internal per-dot shift registers (spec.md section 4.2).
func (p *PPU) renderScanline(y int) {
	bgPixel, bgPalette := p.backgroundRow(y)
	sprPixel, sprPalette, sprBehindBG, sprIsZero := p.spriteRow(y)

	grayscale := p.mask&0x01 != 0
	emphRed := p.mask&0x20 != 0
	emphGreen := p.mask&0x40 != 0
	emphBlue := p.mask&0x80 != 0

	leftBGClip := p.mask&0x02 == 0
	leftSprClip := p.mask&0x04 == 0

	for x := 0; x < frame.Width; x++ {
		bgOpaque := bgPixel[x] != 0 && p.backgroundEnabled() && !(x < 8 && leftBGClip)
		sprOpaque := sprPixel[x] != 0 && p.spritesEnabled() && !(x < 8 && leftSprClip)

		if sprIsZero[x] && bgOpaque && sprOpaque && x != 0 && x != 255 {
			p.status |= 0x40 // sprite 0 hit
		}

		var colorIndex uint8
		switch {
		case !bgOpaque && !sprOpaque:
			colorIndex = p.paletteRAM[0]
		case !bgOpaque:
			colorIndex = sprPalette[x]
		case !sprOpaque:
			colorIndex = bgPalette[x]
		case sprBehindBG[x]:
			colorIndex = bgPalette[x]
		default:
			colorIndex = sprPalette[x]
		}

		r, g, b := frame.Emphasize(colorIndex, grayscale, emphRed, emphGreen, emphBlue)
		p.out.SetRGB(x, y, r, g, b)
	}
}

// backgroundRow computes the 256 background palette-entries and their
// resolved palette-RAM color indices for scanline y, walking the v
// register forward one tile at a time and applying fineX as a final shift.
func (p *PPU) backgroundRow(y int) (palIdx [frame.Width]uint8, colorIdx [frame.Width]uint8) {
	if !p.backgroundEnabled() {
		return palIdx, colorIdx
	}

	cursor := p.v
	const tiles = frame.Width/8 + 1

	var rowIdx [tiles * 8]uint8
	patternBase := uint16(0)
	if p.ctrl&0x10 != 0 {
		patternBase = 0x1000
	}

	for tile := 0; tile < tiles; tile++ {
		ntAddr := 0x2000 | (cursor.nametable() << 10) | (cursor.coarseY() << 5) | cursor.coarseX()
		tileIndex := p.readNametable(ntAddr)

		attrAddr := 0x23C0 | (cursor.nametable() << 10) | ((cursor.coarseY() / 4) << 3) | (cursor.coarseX() / 4)
		attrByte := p.readNametable(attrAddr)
		shift := uint((cursor.coarseY()%4)/2*4 + (cursor.coarseX()%2)*2)
		quadrant := (attrByte >> shift) & 0x03

		fineY := cursor.fineY()
		patternAddr := patternBase + uint16(tileIndex)*16 + fineY
		lo := p.readCHR(patternAddr)
		hi := p.readCHR(patternAddr + 8)

		for bit := 0; bit < 8; bit++ {
			shiftAmt := uint(7 - bit)
			b0 := (lo >> shiftAmt) & 1
			b1 := (hi >> shiftAmt) & 1
			pixel := b0 | (b1 << 1)
			var entry uint8
			if pixel != 0 {
				entry = (quadrant << 2) | pixel
			}
			rowIdx[tile*8+bit] = entry
		}

		cursor.incrementCoarseX()
	}

	fineX := int(p.fineX)
	for x := 0; x < frame.Width; x++ {
		entry := rowIdx[x+fineX]
		palIdx[x] = entry & 0x03
		colorIdx[x] = p.readPalette(uint16(entry))
	}
	return palIdx, colorIdx
}

// spriteRow evaluates primary OAM for scanline y (up to 8 sprites, per
// spec.md's simplified selection rule) and resolves a 256-wide pixel row:
// palette index, resolved color, background-priority flag, and whether
// the winning pixel at each x came from OAM entry 0 (for sprite-0-hit).
func (p *PPU) spriteRow(y int) (palIdx [frame.Width]uint8, colorIdx [frame.Width]uint8, behindBG [frame.Width]bool, isZero [frame.Width]bool) {
	if !p.spritesEnabled() {
		return
	}
	height := p.spriteHeight()

	type candidate struct {
		y, tile, attr, x uint8
		index            int
	}
	var selected []candidate
	overflow := false
	for i := 0; i < 64; i++ {
		sy := int(p.oam[i*4])
		row := y - sy
		if row < 0 || row >= height {
			continue
		}
		if len(selected) >= 8 {
			overflow = true
			continue
		}
		selected = append(selected, candidate{
			y:     p.oam[i*4],
			tile:  p.oam[i*4+1],
			attr:  p.oam[i*4+2],
			x:     p.oam[i*4+3],
			index: i,
		})
	}
	if overflow {
		p.status |= 0x20
	}

	// Lower OAM index has priority: draw in reverse so index 0 wins ties.
	for i := len(selected) - 1; i >= 0; i-- {
		s := selected[i]
		row := y - int(s.y)
		flipV := s.attr&0x80 != 0
		flipH := s.attr&0x40 != 0
		behind := s.attr&0x20 != 0
		paletteHi := (s.attr & 0x03) << 2

		if flipV {
			row = height - 1 - row
		}

		var patternAddr uint16
		if height == 16 {
			table := uint16(s.tile&0x01) * 0x1000
			tileIndex := uint16(s.tile &^ 0x01)
			if row >= 8 {
				tileIndex++
				row -= 8
			}
			patternAddr = table + tileIndex*16 + uint16(row)
		} else {
			table := uint16(0)
			if p.ctrl&0x08 != 0 {
				table = 0x1000
			}
			patternAddr = table + uint16(s.tile)*16 + uint16(row)
		}

		lo := p.readCHR(patternAddr)
		hi := p.readCHR(patternAddr + 8)

		for bit := 0; bit < 8; bit++ {
			col := bit
			if flipH {
				col = 7 - bit
			}
			shiftAmt := uint(7 - col)
			b0 := (lo >> shiftAmt) & 1
			b1 := (hi >> shiftAmt) & 1
			pixel := b0 | (b1 << 1)
			if pixel == 0 {
				continue
			}
			screenX := int(s.x) + bit
			if screenX < 0 || screenX >= frame.Width {
				continue
			}
			entry := paletteHi | pixel
			palIdx[screenX] = pixel
			colorIdx[screenX] = p.readPalette(0x10 + uint16(entry))
			behindBG[screenX] = behind
			isZero[screenX] = s.index == 0
		}
	}
	return
}

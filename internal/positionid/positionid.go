// Package positionid encodes backgammon positions as gnubg-compatible
// position IDs: 14-character base64 strings over an 80-bit key.
//
// A Board is seen from the side of the player on roll. Each side counts its
// own checkers by point number minus one (0-23) with index 24 for the bar, so
// the encoding does not depend on which color moves in which direction.
package positionid

import (
	"errors"
	"fmt"
)

// Length is the length of a position ID string.
const Length = 14

// Sides of a Board.
const (
	Opponent = 0
	Mover    = 1
)

// BarIndex is the slot holding a side's checkers on the bar.
const BarIndex = 24

const maxCheckers = 15

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ErrInvalid is returned for malformed IDs and impossible positions.
var ErrInvalid = errors.New("invalid position ID")

// Board is [side][slot]: slots 0-23 are points 1-24 numbered from that
// side's own perspective, slot 24 is its bar. Borne-off checkers are implied.
type Board [2][25]uint8

// key is the 80-bit packed form: for each side and slot, one 1-bit per
// checker followed by a 0-bit separator.
type key [10]uint8

func (k *key) setBits(pos, n uint32) {
	idx := pos / 8
	word := ((uint32(1) << n) - 1) << (pos & 0x7)
	k[idx] |= uint8(word)
	if idx+1 < uint32(len(k)) {
		k[idx+1] |= uint8(word >> 8)
	}
	if idx+2 < uint32(len(k)) {
		k[idx+2] |= uint8(word >> 16)
	}
}

func pack(b Board) key {
	var k key
	var pos uint32
	for side := 0; side < 2; side++ {
		for slot := 0; slot < 25; slot++ {
			n := uint32(b[side][slot])
			if n > 0 {
				k.setBits(pos, n)
			}
			pos += n + 1
		}
	}
	return k
}

func unpack(k key) (Board, error) {
	var b Board
	side, slot := 0, 0
	for _, cur := range k {
		for bit := 0; bit < 8; bit++ {
			if side == 2 {
				if cur != 0 {
					return b, fmt.Errorf("%w: trailing bits", ErrInvalid)
				}
				break
			}
			if cur&0x1 != 0 {
				b[side][slot]++
			} else {
				slot++
				if slot == 25 {
					side++
					slot = 0
				}
			}
			cur >>= 1
		}
	}
	return b, nil
}

// Encode returns the position ID of b.
func Encode(b Board) string {
	k := pack(b)
	out := make([]byte, Length)
	src := k[:]
	for i := 0; i < 3; i++ {
		out[i*4] = alphabet[src[0]>>2]
		out[i*4+1] = alphabet[((src[0]&0x03)<<4)|(src[1]>>4)]
		out[i*4+2] = alphabet[((src[1]&0x0F)<<2)|(src[2]>>6)]
		out[i*4+3] = alphabet[src[2]&0x3F]
		src = src[3:]
	}
	out[12] = alphabet[src[0]>>2]
	out[13] = alphabet[(src[0]&0x03)<<4]
	return string(out)
}

func decodeChar(ch byte) (uint8, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return ch - 'A', true
	case ch >= 'a' && ch <= 'z':
		return ch - 'a' + 26, true
	case ch >= '0' && ch <= '9':
		return ch - '0' + 52, true
	case ch == '+':
		return 62, true
	case ch == '/':
		return 63, true
	}
	return 0, false
}

// Decode parses a position ID and checks the position it describes.
func Decode(id string) (Board, error) {
	if len(id) != Length {
		return Board{}, fmt.Errorf("%w: length %d", ErrInvalid, len(id))
	}
	var v [Length]uint8
	for i := 0; i < Length; i++ {
		c, ok := decodeChar(id[i])
		if !ok {
			return Board{}, fmt.Errorf("%w: character %q", ErrInvalid, id[i])
		}
		v[i] = c
	}
	var k key
	src := v[:]
	for i := 0; i < 3; i++ {
		k[i*3] = (src[0] << 2) | (src[1] >> 4)
		k[i*3+1] = (src[1] << 4) | (src[2] >> 2)
		k[i*3+2] = (src[2] << 6) | src[3]
		src = src[4:]
	}
	k[9] = (src[0] << 2) | (src[1] >> 4)

	b, err := unpack(k)
	if err != nil {
		return b, err
	}
	if err := Check(b); err != nil {
		return b, err
	}
	return b, nil
}

// Check rejects positions with more than 15 checkers a side, two sides on
// one point, or both sides on the bar against closed home boards.
func Check(b Board) error {
	for side := 0; side < 2; side++ {
		total := 0
		for slot := 0; slot < 25; slot++ {
			total += int(b[side][slot])
		}
		if total > maxCheckers {
			return fmt.Errorf("%w: side %d has %d checkers", ErrInvalid, side, total)
		}
	}
	for i := 0; i < 24; i++ {
		if b[Opponent][i] > 0 && b[Mover][23-i] > 0 {
			return fmt.Errorf("%w: point %d holds both sides", ErrInvalid, 24-i)
		}
	}
	if b[Opponent][BarIndex] == 0 || b[Mover][BarIndex] == 0 {
		return nil
	}
	for i := 0; i < 6; i++ {
		if b[Opponent][i] < 2 || b[Mover][i] < 2 {
			return nil
		}
	}
	return fmt.Errorf("%w: both sides on the bar against closed boards", ErrInvalid)
}

// Swap returns b seen from the other side.
func Swap(b Board) Board {
	return Board{b[Mover], b[Opponent]}
}

// Package host contains the parts shared by the frontends that connect a
// virtual machine to a keyboard and a screen.
package host

import "unicode"

// Layout maps the 4x4 block of keys 1234/QWER/ASDF/ZXCV of a QWERTY
// keyboard onto the hexadecimal keypad:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
var Layout = [4][4]rune{
	{'1', '2', '3', '4'},
	{'q', 'w', 'e', 'r'},
	{'a', 's', 'd', 'f'},
	{'z', 'x', 'c', 'v'},
}

// keypad values at the positions of Layout.
var keypadLayout = [4][4]uint8{
	{0x1, 0x2, 0x3, 0xC},
	{0x4, 0x5, 0x6, 0xD},
	{0x7, 0x8, 0x9, 0xE},
	{0xA, 0x0, 0xB, 0xF},
}

var runeKeys = buildRuneKeys()

func buildRuneKeys() map[rune]uint8 {
	m := make(map[rune]uint8, 16)
	for row := range Layout {
		for col, r := range Layout[row] {
			m[r] = keypadLayout[row][col]
		}
	}
	return m
}

// KeyForRune returns the keypad key of a keyboard character, letters match
// case insensitive.
func KeyForRune(r rune) (uint8, bool) {
	key, ok := runeKeys[unicode.ToLower(r)]
	return key, ok
}

package cleaner

import (
	"strings"
	"unicode/utf8"
)

// HeaderMarker starts the column header line of the export.
const HeaderMarker = "#Data operacji"

const (
	dataPrefix    = "20" // every booking row starts with a year
	minDataLength = 12
)

// mojibake maps the Windows-1252 reading of Windows-1250 bytes back to the
// Polish letters they encode. No value is also a key.
var mojibake = map[rune]rune{
	'¥':      'Ą', // 0xA5
	'¹':      'ą', // 0xB9
	'Æ':      'Ć', // 0xC6
	'æ':      'ć', // 0xE6
	'Ê':      'Ę', // 0xCA
	'ê':      'ę', // 0xEA
	'£':      'Ł', // 0xA3
	'³':      'ł', // 0xB3
	'Ñ':      'Ń', // 0xD1
	'ñ':      'ń', // 0xF1
	'Œ':      'Ś', // 0x8C
	'œ':      'ś', // 0x9C
	'\u008f': 'Ź', // 0x8F is unassigned in Windows-1252
	'Ÿ':      'ź', // 0x9F
	'¯':      'Ż', // 0xAF
	'¿':      'ż', // 0xBF
}

// IsDataLine reports whether line looks like a booking row. Length is
// counted in characters.
func IsDataLine(line string) bool {
	return strings.HasPrefix(line, dataPrefix) && utf8.RuneCountInString(line) > minDataLength
}

// IsHeaderLine reports whether line is the column header.
func IsHeaderLine(line string) bool {
	return strings.HasPrefix(line, HeaderMarker)
}

// FilterLines keeps the header and data lines of text, in order.
func FilterLines(text string) []string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if IsDataLine(line) || IsHeaderLine(line) {
			kept = append(kept, line)
		}
	}
	return kept
}

// RepairMojibake replaces known mis-decoded characters. Other runes pass
// through unchanged.
func RepairMojibake(s string) string {
	return strings.Map(func(r rune) rune {
		if fixed, ok := mojibake[r]; ok {
			return fixed
		}
		return r
	}, s)
}

// Clean returns the header and data lines of text joined by newlines,
// with mojibake repaired.
func Clean(text string) string {
	return RepairMojibake(strings.Join(FilterLines(text), "\n"))
}

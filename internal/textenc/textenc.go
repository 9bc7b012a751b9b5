package textenc

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// FallbackEncoding is used when detection yields nothing usable.
// Every byte value maps to a rune, so decoding with it is total.
const FallbackEncoding = "windows-1252"

// Decoded is the text form of a raw export.
type Decoded struct {
	Text     string
	Encoding string // charset actually used to decode
	Fallback bool   // true if the detected charset could not be used
}

// Detect returns the most likely charset name for raw, or "" when the
// detector has no answer.
func Detect(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	res, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || res == nil {
		return ""
	}
	return res.Charset
}

// Resolve detects the charset of raw and decodes it. Undecodable
// sequences become U+FFFD.
func Resolve(raw []byte) Decoded {
	name := Detect(raw)
	if name != "" {
		if enc, err := htmlindex.Get(name); err == nil {
			if text, err := decode(enc, raw); err == nil {
				return Decoded{Text: text, Encoding: strings.ToLower(name)}
			}
		}
	}

	text, _ := decode(charmap.Windows1252, raw)
	return Decoded{Text: text, Encoding: FallbackEncoding, Fallback: true}
}

func decode(enc encoding.Encoding, raw []byte) (string, error) {
	text, _, err := transform.String(enc.NewDecoder(), string(raw))
	if err != nil {
		return "", err
	}
	text = strings.ToValidUTF8(text, "\uFFFD")
	return strings.TrimPrefix(text, "\ufeff"), nil
}
